package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"photofolio/internal/domain/models"
	"photofolio/internal/lib/imageinfo"
	"photofolio/internal/storage"
)

// LocalFileStorage хранилище событий в локальной файловой системе.
// Раздача файлов по baseURL выполняется HTTP-сервером.
type LocalFileStorage struct {
	baseDir    string // Базовый каталог для хранения (например: "./uploads")
	baseURL    string // Базовый URL для доступа к файлам (например: "http://localhost:8080/uploads")
	maxResults int
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir:    baseDir,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxResults: 500,
	}, nil
}

// WithMaxResults ограничивает размер листинга папки
func (s *LocalFileStorage) WithMaxResults(n int) *LocalFileStorage {
	if n > 0 {
		s.maxResults = n
	}

	return s
}

// GetFullPath возвращает полный путь к объекту на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) (string, error) {
	full := filepath.Join(s.baseDir, filepath.FromSlash(relativePath))

	rel, err := filepath.Rel(s.baseDir, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %s", storage.ErrNotFound, relativePath)
	}

	return full, nil
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

func (s *LocalFileStorage) url(key string) string {
	return s.baseURL + "/" + key
}

func objectKey(folder, name string) string {
	return strings.Trim(folder, "/") + "/" + name
}

// ListRootFolders возвращает каталоги верхнего уровня
func (s *LocalFileStorage) ListRootFolders(ctx context.Context) ([]string, error) {
	const op = "storage.filestorage.ListRootFolders"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	folders := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
		}
	}

	return folders, nil
}

// ListImages возвращает изображения папки, отсортированные по времени загрузки
func (s *LocalFileStorage) ListImages(ctx context.Context, folder string) ([]models.GalleryImage, error) {
	const op = "storage.filestorage.ListImages"

	folder = models.CleanFolderName(folder)
	if folder == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrFolderEmpty)
	}

	dir, err := s.GetFullPath(folder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	images := make([]models.GalleryImage, 0)

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() || d.Name() == models.MetadataObjectName || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(s.baseDir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		img := models.GalleryImage{
			URL:       s.url(key),
			PublicID:  key,
			Format:    imageinfo.FormatOf(key),
			CreatedAt: info.ModTime(),
		}

		if f, err := os.Open(p); err == nil {
			if cfg, err := imageinfo.InspectReader(f); err == nil {
				img.Width, img.Height = cfg.Width, cfg.Height
			}
			f.Close()
		}

		images = append(images, img)

		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return images, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].CreatedAt.Before(images[j].CreatedAt)
	})

	if len(images) > s.maxResults {
		images = images[:s.maxResults]
	}

	return images, nil
}

// UploadImage сохраняет изображение в папку события под сгенерированным именем
func (s *LocalFileStorage) UploadImage(ctx context.Context, folder string, file *multipart.FileHeader) (models.UploadResult, error) {
	const op = "storage.filestorage.UploadImage"

	if err := ctx.Err(); err != nil {
		return models.UploadResult{}, err
	}

	folder = models.CleanFolderName(folder)
	if folder == "" {
		folder = models.DefaultFolder
	}

	src, err := file.Open()
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: failed to open source file: %w", op, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: failed to read source file: %w", op, err)
	}

	info, err := imageinfo.Inspect(data)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: %w: %s", op, storage.ErrInvalidFileType, err.Error())
	}

	key := objectKey(folder, uuid.NewString()+imageinfo.Ext(info.Format))

	if err := s.write(ctx, key, data); err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.UploadResult{
		URL:      s.url(key),
		PublicID: key,
		Folder:   folder,
	}, nil
}

// UploadTextBlob перезаписывает объект с фиксированным именем
func (s *LocalFileStorage) UploadTextBlob(ctx context.Context, folder, name string, content []byte) (models.UploadResult, error) {
	const op = "storage.filestorage.UploadTextBlob"

	folder = models.CleanFolderName(folder)
	if folder == "" {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, storage.ErrFolderEmpty)
	}

	key := objectKey(folder, name)
	if err := s.write(ctx, key, content); err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.UploadResult{
		URL:      s.url(key),
		PublicID: key,
		Folder:   folder,
	}, nil
}

// write пишет во временный файл и переименовывает его, чтобы читатели не видели частичную запись
func (s *LocalFileStorage) write(ctx context.Context, key string, data []byte) error {
	filePath, err := s.GetFullPath(key)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to copy file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), filePath); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to move file: %w", err)
	}

	return nil
}

func (s *LocalFileStorage) ReadBlob(ctx context.Context, folder, name string) ([]byte, error) {
	const op = "storage.filestorage.ReadBlob"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filePath, err := s.GetFullPath(objectKey(folder, name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return data, nil
}

// DeleteByPublicID удаляет объект из хранилища
func (s *LocalFileStorage) DeleteByPublicID(ctx context.Context, publicID string) error {
	const op = "storage.filestorage.DeleteByPublicID"

	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.GetFullPath(publicID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetResourceURL возвращает URL объекта с версией по времени изменения, либо URL по соглашению
func (s *LocalFileStorage) GetResourceURL(ctx context.Context, folder, name string) (string, error) {
	key := objectKey(folder, name)

	fullPath, err := s.GetFullPath(key)
	if err != nil {
		return s.url(key), nil
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return s.url(key), nil
	}

	return fmt.Sprintf("%s?v=%d", s.url(key), info.ModTime().Unix()), nil
}
