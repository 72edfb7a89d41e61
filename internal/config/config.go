package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	HTTP        HTTPConfig        `yaml:"http"`
	Auth        AuthConfig        `yaml:"auth"`
	ObjectStore ObjectStoreConfig `yaml:"object_store"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Redis       RedisConf         `yaml:"redis"`
	Postgres    PostgresConfig    `yaml:"postgres"`
	FolderIndex FolderIndexConfig `yaml:"folder_index"`
	Display     DisplayConfig     `yaml:"display"`
}

type HTTPConfig struct {
	Host          string        `yaml:"host"`
	Port          string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	MaxUploadSize int64         `yaml:"max_upload_size" env-default:"20971520"`
	ShutdownTTL   time.Duration `yaml:"shutdown_ttl" env-default:"10s"`
}

type AuthConfig struct {
	// bcrypt hash of the admin password
	AdminPasswordHash string        `yaml:"admin_password_hash" env:"ADMIN_PASSWORD_HASH" env-required:"true"`
	TokenSecret       string        `yaml:"token_secret" env:"TOKEN_SECRET" env-required:"true"`
	SessionSecret     string        `yaml:"session_secret" env:"SESSION_SECRET" env-required:"true"`
	AccessTokenTTL    time.Duration `yaml:"access_token_ttl" env-default:"15m"`
	RefreshTokenTTL   time.Duration `yaml:"refresh_token_ttl" env-default:"168h"`
}

type ObjectStoreConfig struct {
	// minio | local
	Driver     string        `yaml:"driver" env:"OBJECT_STORE_DRIVER" env-default:"local"`
	Endpoint   string        `yaml:"endpoint" env:"OBJECT_STORE_ENDPOINT"`
	AccessKey  string        `yaml:"access_key" env:"OBJECT_STORE_ACCESS_KEY"`
	SecretKey  string        `yaml:"secret_key" env:"OBJECT_STORE_SECRET_KEY"`
	Bucket     string        `yaml:"bucket" env-default:"photofolio"`
	UseSSL     bool          `yaml:"use_ssl"`
	PublicURL  string        `yaml:"public_url"`
	MaxResults int           `yaml:"max_results" env-default:"500"`
	Timeout    time.Duration `yaml:"timeout" env-default:"15s"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env-default:"http://localhost:8080/uploads"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN"`
}

type FolderIndexConfig struct {
	// redis | postgres | memory
	Driver  string        `yaml:"driver" env:"FOLDER_INDEX_DRIVER" env-default:"memory"`
	LockTTL time.Duration `yaml:"lock_ttl" env-default:"35s"`
}

type DisplayConfig struct {
	// empty | placeholder
	EmptyState   string             `yaml:"empty_state" env-default:"empty"`
	Concurrency  int                `yaml:"concurrency" env-default:"8"`
	ViewTimeout  time.Duration      `yaml:"view_timeout" env-default:"10s"`
	Placeholders []PlaceholderEvent `yaml:"placeholders"`
}

type PlaceholderEvent struct {
	FolderName string `yaml:"folder_name"`
	Title      string `yaml:"title"`
	Excerpt    string `yaml:"excerpt"`
	Category   string `yaml:"category"`
	CoverImage string `yaml:"cover_image"`
	Date       string `yaml:"date"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func LoadPath(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &PathError{Path: configPath}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, &ReadError{Err: err}
	}

	cfg.FolderIndex.LockTTL = MinLockTTL(cfg.FolderIndex.LockTTL, cfg.ObjectStore.Timeout)

	return &cfg, nil
}

// запас на сеть и сериализацию поверх двух вызовов хранилища
const lockTTLMargin = 5 * time.Second

// MinLockTTL поднимает TTL блокировки папки выше чтения и записи metadata.json,
// каждое из которых может занять до storeTimeout.
func MinLockTTL(lockTTL, storeTimeout time.Duration) time.Duration {
	if floor := 2*storeTimeout + lockTTLMargin; lockTTL < floor {
		return floor
	}

	return lockTTL
}

type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return "config file does not exist: " + e.Path
}

type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "cannot read config: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
