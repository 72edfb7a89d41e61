package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"photofolio/internal/domain/models"
	"photofolio/internal/lib/logger/sl"
	"photofolio/internal/storage"
	"photofolio/internal/storage/objectstore"
)

type MediaService struct {
	log         *slog.Logger
	store       objectstore.ObjectStore
	maxFileSize int64
}

func NewMediaService(log *slog.Logger, store objectstore.ObjectStore, maxFileSize int64) *MediaService {
	return &MediaService{
		log:         log,
		store:       store,
		maxFileSize: maxFileSize,
	}
}

// UploadMedia загружает одно изображение в папку события
func (s *MediaService) UploadMedia(ctx context.Context, folder string, file *multipart.FileHeader) (models.UploadResult, error) {
	const op = "media_service.UploadMedia"

	log := s.log.With(
		slog.String("op", op),
		slog.String("folder", folder),
	)

	if file == nil {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, models.NewValidationError("file", "No file provided"))
	}

	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		log.Info("file too large", slog.Int64("size", file.Size))

		return models.UploadResult{}, fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge)
	}

	res, err := s.store.UploadImage(ctx, folder, file)
	if err != nil {
		log.Error("failed to upload file", sl.Err(err))

		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("file uploaded", slog.String("public_id", res.PublicID))

	return res, nil
}

// DeleteMedia удаляет один объект по его publicId
func (s *MediaService) DeleteMedia(ctx context.Context, publicID string) error {
	const op = "media_service.DeleteMedia"

	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return fmt.Errorf("%s: %w", op, models.NewValidationError("publicId", "No publicId provided"))
	}

	if err := s.store.DeleteByPublicID(ctx, publicID); err != nil {
		s.log.Warn("failed to delete file", slog.String("op", op), slog.String("public_id", publicID), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *MediaService) FolderImages(ctx context.Context, folder string) ([]models.GalleryImage, error) {
	const op = "media_service.FolderImages"

	folder = models.CleanFolderName(folder)
	if folder == "" {
		return nil, fmt.Errorf("%s: %w", op, models.NewValidationError("folder", "Folder parameter is required"))
	}

	images, err := s.store.ListImages(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return images, nil
}

func (s *MediaService) RootFolders(ctx context.Context) ([]string, error) {
	const op = "media_service.RootFolders"

	folders, err := s.store.ListRootFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return folders, nil
}
