package objectstore

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"photofolio/internal/config"
	"photofolio/internal/domain/models"
	"photofolio/internal/storage"
	"photofolio/internal/storage/filestorage"
)

// ObjectStore адаптер над хранилищем изображений и метаданных событий
type ObjectStore interface {
	ListRootFolders(ctx context.Context) ([]string, error)
	ListImages(ctx context.Context, folder string) ([]models.GalleryImage, error)
	UploadImage(ctx context.Context, folder string, file *multipart.FileHeader) (models.UploadResult, error)
	UploadTextBlob(ctx context.Context, folder, name string, content []byte) (models.UploadResult, error)
	ReadBlob(ctx context.Context, folder, name string) ([]byte, error)
	DeleteByPublicID(ctx context.Context, publicID string) error
	GetResourceURL(ctx context.Context, folder, name string) (string, error)
}

const (
	DriverMinio = "minio"
	DriverLocal = "local"
)

// New выбирает драйвер хранилища по конфигурации
func New(cfg config.ObjectStoreConfig, fsCfg config.FileStorageConfig) (ObjectStore, error) {
	const op = "storage.objectstore.New"

	switch cfg.Driver {
	case DriverMinio:
		s, err := NewMinioStore(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return s, nil
	case DriverLocal, "":
		s, err := filestorage.NewLocalFileStorage(fsCfg.BaseDir, fsCfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return s.WithMaxResults(cfg.MaxResults), nil
	}

	return nil, fmt.Errorf("%s: %w: %s", op, storage.ErrUnknownDriver, cfg.Driver)
}

// ObjectKey joins a folder and an object name into a store key.
func ObjectKey(folder, name string) string {
	return strings.Trim(folder, "/") + "/" + name
}
