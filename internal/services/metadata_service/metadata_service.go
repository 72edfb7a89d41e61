package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"photofolio/internal/domain/models"
	"photofolio/internal/lib/logger/sl"
	"photofolio/internal/storage"
)

// BlobStore часть объектного хранилища, нужная для metadata.json
type BlobStore interface {
	UploadTextBlob(ctx context.Context, folder, name string, content []byte) (models.UploadResult, error)
	ReadBlob(ctx context.Context, folder, name string) ([]byte, error)
	GetResourceURL(ctx context.Context, folder, name string) (string, error)
}

type MetadataService struct {
	log   *slog.Logger
	store BlobStore
	now   func() time.Time
}

func NewMetadataService(log *slog.Logger, store BlobStore) *MetadataService {
	return &MetadataService{
		log:   log,
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Save записывает метаданные нового события, сбрасывая счетчики.
// Предыдущее содержимое metadata.json перезаписывается полностью.
func (s *MetadataService) Save(ctx context.Context, folder string, fields models.EventFields) (models.UploadResult, error) {
	const op = "metadata_service.Save"

	folder = models.CleanFolderName(folder)

	log := s.log.With(
		slog.String("op", op),
		slog.String("folder", folder),
	)

	if folder == "" {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, models.NewValidationError("folderName", "folder name is required"))
	}

	now := s.now()
	event := models.Event{
		FolderName:  folder,
		EventFields: fields,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := s.put(ctx, event)
	if err != nil {
		log.Error("failed to save metadata", sl.Err(err))

		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("metadata saved", slog.String("public_id", res.PublicID))

	return res, nil
}

// Write перезаписывает уже полную запись события, сохраняя ее счетчики
func (s *MetadataService) Write(ctx context.Context, event models.Event) (models.UploadResult, error) {
	const op = "metadata_service.Write"

	event.FolderName = models.CleanFolderName(event.FolderName)
	if event.FolderName == "" {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, models.NewValidationError("folderName", "folder name is required"))
	}

	event.UpdatedAt = s.now()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = event.UpdatedAt
	}

	res, err := s.put(ctx, event)
	if err != nil {
		s.log.Error("failed to write metadata",
			slog.String("op", op),
			slog.String("folder", event.FolderName),
			sl.Err(err),
		)

		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

func (s *MetadataService) put(ctx context.Context, event models.Event) (models.UploadResult, error) {
	data, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("failed to encode metadata: %w", err)
	}

	return s.store.UploadTextBlob(ctx, event.FolderName, models.MetadataObjectName, data)
}

// Load читает metadata.json события
func (s *MetadataService) Load(ctx context.Context, folder string) (models.Event, error) {
	const op = "metadata_service.Load"

	folder = models.CleanFolderName(folder)
	if folder == "" {
		return models.Event{}, fmt.Errorf("%s: %w", op, models.NewValidationError("folder", "folder parameter is required"))
	}

	data, err := s.store.ReadBlob(ctx, folder, models.MetadataObjectName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Event{}, fmt.Errorf("%s: %w", op, models.ErrEventNotFound)
		}

		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	var event models.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return models.Event{}, fmt.Errorf("%s: failed to decode metadata: %w", op, err)
	}

	// Старые записи могли не содержать имени папки
	if event.FolderName == "" {
		event.FolderName = folder
	}

	return event, nil
}

func (s *MetadataService) MetadataURL(ctx context.Context, folder string) (string, error) {
	const op = "metadata_service.MetadataURL"

	url, err := s.store.GetResourceURL(ctx, models.CleanFolderName(folder), models.MetadataObjectName)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return url, nil
}
