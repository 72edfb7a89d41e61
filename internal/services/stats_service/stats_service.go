package services

import (
	"context"
	"fmt"
	"log/slog"

	"photofolio/internal/domain/models"
	"photofolio/internal/lib/logger/sl"
	"photofolio/internal/repository"
)

type MetadataStore interface {
	Load(ctx context.Context, folder string) (models.Event, error)
	Write(ctx context.Context, event models.Event) (models.UploadResult, error)
}

type StatsService struct {
	log      *slog.Logger
	metadata MetadataStore
	locker   repository.Locker
}

func NewStatsService(log *slog.Logger, metadata MetadataStore, locker repository.Locker) *StatsService {
	return &StatsService{
		log:      log,
		metadata: metadata,
		locker:   locker,
	}
}

// Increment меняет один счетчик события на единицу и возвращает новое значение.
// Чтение и запись выполняются под блокировкой папки.
func (s *StatsService) Increment(ctx context.Context, folder string, counter models.Counter, up bool) (int, error) {
	const op = "stats_service.Increment"

	folder = models.CleanFolderName(folder)

	log := s.log.With(
		slog.String("op", op),
		slog.String("folder", folder),
		slog.String("counter", string(counter)),
	)

	if folder == "" {
		return 0, fmt.Errorf("%s: %w", op, models.NewValidationError("folderName", "folderName is required"))
	}

	if !counter.Valid() {
		return 0, fmt.Errorf("%s: %w", op, models.NewValidationError("type", "type must be likes or views"))
	}

	release, err := s.locker.Acquire(ctx, folder)
	if err != nil {
		log.Error("failed to acquire lock", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			log.Warn("failed to release lock", sl.Err(err))
		}
	}()

	event, err := s.metadata.Load(ctx, folder)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	value := counter.Apply(&event, up)
	event.Revision++

	if _, err := s.metadata.Write(ctx, event); err != nil {
		log.Error("failed to write counters", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("counter updated", slog.Int("value", value))

	return value, nil
}
