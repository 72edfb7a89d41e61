package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"photofolio/internal/config"
	"photofolio/internal/domain/models"
	"photofolio/internal/lib/imageinfo"
	"photofolio/internal/storage"
)

// objectClient is the part of the minio client the store needs.
type objectClient interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ReadObject(ctx context.Context, bucketName, objectName string) ([]byte, error)
}

type sdkClient struct {
	*minio.Client
}

func (c sdkClient) ReadObject(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	obj, err := c.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

type MinioStore struct {
	client     objectClient
	bucket     string
	publicURL  string
	maxResults int
	timeout    time.Duration
}

const (
	metaWidth  = "Width"
	metaHeight = "Height"

	codeNoSuchKey = "NoSuchKey"
)

func NewMinioStore(cfg config.ObjectStoreConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("%s/%s", client.EndpointURL().String(), cfg.Bucket)
	}

	return newMinioStore(sdkClient{Client: client}, cfg.Bucket, publicURL, cfg.MaxResults, cfg.Timeout), nil
}

func newMinioStore(client objectClient, bucket, publicURL string, maxResults int, timeout time.Duration) *MinioStore {
	if maxResults <= 0 {
		maxResults = 500
	}

	return &MinioStore{
		client:     client,
		bucket:     bucket,
		publicURL:  strings.TrimRight(publicURL, "/"),
		maxResults: maxResults,
		timeout:    timeout,
	}
}

func (s *MinioStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.timeout)
}

func (s *MinioStore) url(key string) string {
	return s.publicURL + "/" + key
}

// ListRootFolders возвращает папки верхнего уровня бакета
func (s *MinioStore) ListRootFolders(ctx context.Context) ([]string, error) {
	const op = "storage.objectstore.MinioStore.ListRootFolders"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	folders := make([]string, 0)
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: false}) {
		if object.Err != nil {
			return nil, fmt.Errorf("%s: %w", op, object.Err)
		}

		if strings.HasSuffix(object.Key, "/") {
			folders = append(folders, strings.TrimSuffix(object.Key, "/"))
		}
	}

	return folders, nil
}

// ListImages возвращает изображения папки без объекта метаданных
func (s *MinioStore) ListImages(ctx context.Context, folder string) ([]models.GalleryImage, error) {
	const op = "storage.objectstore.MinioStore.ListImages"

	folder = models.CleanFolderName(folder)
	if folder == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrFolderEmpty)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	images := make([]models.GalleryImage, 0)
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:       strings.Trim(folder, "/") + "/",
		Recursive:    true,
		WithMetadata: true,
	})

	for object := range objects {
		if object.Err != nil {
			return nil, fmt.Errorf("%s: %w", op, object.Err)
		}

		if strings.HasSuffix(object.Key, "/") || path.Base(object.Key) == models.MetadataObjectName {
			continue
		}

		images = append(images, models.GalleryImage{
			URL:       s.url(object.Key),
			PublicID:  object.Key,
			Width:     userMetaInt(object.UserMetadata, metaWidth),
			Height:    userMetaInt(object.UserMetadata, metaHeight),
			Format:    imageinfo.FormatOf(object.Key),
			CreatedAt: object.LastModified,
		})

		if len(images) >= s.maxResults {
			break
		}
	}

	return images, nil
}

// UploadImage загружает изображение в папку под сгенерированным именем
func (s *MinioStore) UploadImage(ctx context.Context, folder string, file *multipart.FileHeader) (models.UploadResult, error) {
	const op = "storage.objectstore.MinioStore.UploadImage"

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

	key := ObjectKey(folder, uuid.NewString()+imageinfo.Ext(info.Format))

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "image/" + info.Format,
		UserMetadata: map[string]string{
			metaWidth:  strconv.Itoa(info.Width),
			metaHeight: strconv.Itoa(info.Height),
		},
	})
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.UploadResult{
		URL:      s.url(key),
		PublicID: key,
		Folder:   folder,
	}, nil
}

// UploadTextBlob записывает текстовый объект с фиксированным именем, перезаписывая прежний
func (s *MinioStore) UploadTextBlob(ctx context.Context, folder, name string, content []byte) (models.UploadResult, error) {
	const op = "storage.objectstore.MinioStore.UploadTextBlob"

	folder = models.CleanFolderName(folder)
	if folder == "" {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, storage.ErrFolderEmpty)
	}

	key := ObjectKey(folder, name)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType:  "application/json",
		CacheControl: "no-cache",
	})
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.UploadResult{
		URL:      s.url(key),
		PublicID: key,
		Folder:   folder,
	}, nil
}

func (s *MinioStore) ReadBlob(ctx context.Context, folder, name string) ([]byte, error) {
	const op = "storage.objectstore.MinioStore.ReadBlob"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	data, err := s.client.ReadObject(ctx, s.bucket, ObjectKey(folder, name))
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return data, nil
}

func (s *MinioStore) DeleteByPublicID(ctx context.Context, publicID string) error {
	const op = "storage.objectstore.MinioStore.DeleteByPublicID"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// S3 deletes are idempotent, so existence is checked first to report a miss.
	if _, err := s.client.StatObject(ctx, s.bucket, publicID, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetResourceURL ищет объект в хранилище; если поиск не удался, строит URL по соглашению об именах
func (s *MinioStore) GetResourceURL(ctx context.Context, folder, name string) (string, error) {
	key := ObjectKey(folder, name)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return s.url(key), nil
	}

	return fmt.Sprintf("%s?v=%d", s.url(key), info.LastModified.Unix()), nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == codeNoSuchKey
}

// userMetaInt reads an integer user-metadata value whatever prefix/casing the listing used.
func userMetaInt(meta map[string]string, key string) int {
	for k, v := range meta {
		k = strings.TrimPrefix(strings.ToLower(k), "x-amz-meta-")
		if k == strings.ToLower(key) {
			n, err := strconv.Atoi(v)
			if err != nil {
				return 0
			}

			return n
		}
	}

	return 0
}
