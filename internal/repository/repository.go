package repository

import (
	"fmt"
	"time"

	"photofolio/internal/config"
	"photofolio/internal/storage"
	"photofolio/internal/storage/postgresql"
	redisapp "photofolio/internal/storage/redis"
)

const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Repository struct {
	Folders FolderIndexRepository
	Tokens  TokenRepository
	Locker  Locker
}

// NewRepository собирает репозитории по драйверу индекса. Токены и блокировки
// уходят в redis, когда он подключен, иначе живут в памяти процесса.
func NewRepository(cfg config.FolderIndexConfig, rdb *redisapp.Client, pg *postgresql.Storage) (*Repository, error) {
	const op = "repository.NewRepository"

	repo := &Repository{}

	switch cfg.Driver {
	case DriverRedis:
		if rdb == nil {
			return nil, fmt.Errorf("%s: redis driver requires redis connection", op)
		}
		repo.Folders = NewRedisFolderIndex(rdb)
	case DriverPostgres:
		if pg == nil {
			return nil, fmt.Errorf("%s: postgres driver requires postgres connection", op)
		}
		repo.Folders = NewPostgresFolderIndex(pg.Pool())
	case DriverMemory, "":
		repo.Folders = NewMemoryFolderIndex()
	default:
		return nil, fmt.Errorf("%s: %w: %s", op, storage.ErrUnknownDriver, cfg.Driver)
	}

	if rdb != nil {
		repo.Tokens = NewRedisTokenRepo(rdb)
		repo.Locker = NewRedisLocker(rdb, cfg.LockTTL)
	} else {
		repo.Tokens = NewCacheTokenRepo(10 * time.Minute)
		repo.Locker = NewMemoryLocker()
	}

	return repo, nil
}
