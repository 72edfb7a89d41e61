package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"photofolio/internal/config"
	"photofolio/internal/domain/models"
	"photofolio/internal/lib/logger/sl"
	"photofolio/internal/repository"
)

type MetadataStore interface {
	Save(ctx context.Context, folder string, fields models.EventFields) (models.UploadResult, error)
	Write(ctx context.Context, event models.Event) (models.UploadResult, error)
	Load(ctx context.Context, folder string) (models.Event, error)
	MetadataURL(ctx context.Context, folder string) (string, error)
}

type ImageLister interface {
	ListImages(ctx context.Context, folder string) ([]models.GalleryImage, error)
}

type ViewCounter interface {
	Increment(ctx context.Context, folder string, counter models.Counter, up bool) (int, error)
}

const (
	EmptyStateEmpty       = "empty"
	EmptyStatePlaceholder = "placeholder"
)

type EventService struct {
	log      *slog.Logger
	metadata MetadataStore
	images   ImageLister
	index    repository.FolderIndexRepository
	locker   repository.Locker
	views    ViewCounter
	display  config.DisplayConfig

	// фоновые инкременты просмотров
	bg sync.WaitGroup
}

func NewEventService(
	log *slog.Logger,
	metadata MetadataStore,
	images ImageLister,
	index repository.FolderIndexRepository,
	locker repository.Locker,
	views ViewCounter,
	display config.DisplayConfig,
) *EventService {
	if display.Concurrency <= 0 {
		display.Concurrency = 8
	}
	if display.ViewTimeout <= 0 {
		display.ViewTimeout = 10 * time.Second
	}

	return &EventService{
		log:      log,
		metadata: metadata,
		images:   images,
		index:    index,
		locker:   locker,
		views:    views,
		display:  display,
	}
}

// Create проверяет форму, записывает metadata.json и регистрирует папку в индексе.
// Шаги не транзакционны: уже загруженные изображения не удаляются при ошибке.
func (s *EventService) Create(ctx context.Context, in models.EventUpload) (models.UploadResult, error) {
	const op = "event_service.Create"

	folder := models.CleanFolderName(in.FolderName)

	log := s.log.With(
		slog.String("op", op),
		slog.String("folder", folder),
	)

	if err := validateUpload(folder, in); err != nil {
		log.Info("upload rejected", sl.Err(err))

		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.metadata.Save(ctx, folder, in.Fields)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.index.Add(ctx, folder); err != nil {
		log.Error("metadata saved but folder index update failed", sl.Err(err))

		return res, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event created", slog.Int("gallery_images", len(in.GalleryImages)))

	return res, nil
}

func validateUpload(folder string, in models.EventUpload) error {
	if folder == "" {
		return models.NewValidationError("folderName", "folder name is required")
	}

	if strings.TrimSpace(in.Fields.CoverImage) == "" {
		return models.NewValidationError("coverImage", "cover image is required")
	}

	hasGallery := false
	for _, img := range in.GalleryImages {
		if strings.TrimSpace(img) != "" {
			hasGallery = true
			break
		}
	}
	if !hasGallery {
		return models.NewValidationError("galleryImages", "at least one gallery image is required")
	}

	return validateFields(in.Fields)
}

var fieldsValidator = newFieldsValidator()

func newFieldsValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	return v
}

// validateFields проверяет поля события по тегам validate
func validateFields(f models.EventFields) error {
	err := fieldsValidator.Struct(f)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "oneof":
		return models.NewValidationError(fe.Field(), fmt.Sprintf("unknown %s %q", fe.Field(), fe.Value()))
	case "max":
		return models.NewValidationError(fe.Field(), fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	}

	return models.NewValidationError(fe.Field(), fmt.Sprintf("%s is invalid", fe.Field()))
}

// Update перезаписывает описательные поля и флаги, сохраняя счетчики и дату создания
func (s *EventService) Update(ctx context.Context, folder string, fields models.EventFields) (models.Event, error) {
	const op = "event_service.Update"

	folder = models.CleanFolderName(folder)

	log := s.log.With(
		slog.String("op", op),
		slog.String("folder", folder),
	)

	if folder == "" {
		return models.Event{}, fmt.Errorf("%s: %w", op, models.NewValidationError("folderName", "folder name is required"))
	}

	if err := validateFields(fields); err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	release, err := s.locker.Acquire(ctx, folder)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			log.Warn("failed to release lock", sl.Err(err))
		}
	}()

	event, err := s.metadata.Load(ctx, folder)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	event.EventFields = fields
	event.Revision++

	if _, err := s.metadata.Write(ctx, event); err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event updated", slog.Int64("revision", event.Revision))

	return event, nil
}

// Delete убирает папку из индекса. metadata.json и изображения остаются в хранилище.
func (s *EventService) Delete(ctx context.Context, folder string) error {
	const op = "event_service.Delete"

	folder = models.CleanFolderName(folder)
	if folder == "" {
		return fmt.Errorf("%s: %w", op, models.NewValidationError("folderName", "folder name is required"))
	}

	if err := s.index.Remove(ctx, folder); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("event removed from index", slog.String("op", op), slog.String("folder", folder))

	return nil
}

// ListSurface возвращает события страницы сайта в порядке индекса
func (s *EventService) ListSurface(ctx context.Context, surface models.Surface, withImages bool) (models.Listing, error) {
	const op = "event_service.ListSurface"

	listing, err := s.list(ctx, surface.Includes, withImages)
	if err != nil {
		return models.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	return listing, nil
}

// ListAll возвращает все события индекса без фильтра по флагам
func (s *EventService) ListAll(ctx context.Context) (models.Listing, error) {
	const op = "event_service.ListAll"

	listing, err := s.list(ctx, func(models.Event) bool { return true }, false)
	if err != nil {
		return models.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	return listing, nil
}

func (s *EventService) list(ctx context.Context, keep func(models.Event) bool, withImages bool) (models.Listing, error) {
	folders, err := s.index.All(ctx)
	if err != nil {
		return models.Listing{}, err
	}

	if len(folders) == 0 {
		return s.emptyListing(), nil
	}

	results := make([]*models.EventView, len(folders))

	g := new(errgroup.Group)
	g.SetLimit(s.display.Concurrency)

	for i, folder := range folders {
		i, folder := i, folder
		g.Go(func() error {
			results[i] = s.loadView(ctx, folder, keep, withImages)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return models.Listing{}, err
	}

	events := make([]models.EventView, 0, len(folders))
	for _, v := range results {
		if v != nil {
			events = append(events, *v)
		}
	}

	return models.Listing{Events: events}, nil
}

// loadView возвращает nil для событий, которые нужно пропустить
func (s *EventService) loadView(ctx context.Context, folder string, keep func(models.Event) bool, withImages bool) *models.EventView {
	event, err := s.metadata.Load(ctx, folder)
	if err != nil {
		if !errors.Is(err, models.ErrEventNotFound) {
			s.log.Warn("failed to load event metadata", slog.String("folder", folder), sl.Err(err))
		}
		return nil
	}

	if !keep(event) {
		return nil
	}

	view := &models.EventView{Event: event}
	if withImages {
		images, err := s.images.ListImages(ctx, folder)
		if err != nil {
			s.log.Warn("failed to list event images", slog.String("folder", folder), sl.Err(err))
		}
		view.Images = images
	}

	return view
}

func (s *EventService) emptyListing() models.Listing {
	if s.display.EmptyState != EmptyStatePlaceholder || len(s.display.Placeholders) == 0 {
		return models.Listing{Events: []models.EventView{}}
	}

	events := make([]models.EventView, 0, len(s.display.Placeholders))
	for _, p := range s.display.Placeholders {
		events = append(events, models.EventView{Event: models.Event{
			FolderName: p.FolderName,
			EventFields: models.EventFields{
				Title:      p.Title,
				Excerpt:    p.Excerpt,
				Category:   models.Category(p.Category),
				CoverImage: p.CoverImage,
				Date:       p.Date,
			},
		}})
	}

	return models.Listing{Events: events, Placeholder: true}
}

// Detail загружает событие с изображениями и в фоне засчитывает просмотр
func (s *EventService) Detail(ctx context.Context, folder string) (models.EventView, error) {
	const op = "event_service.Detail"

	folder = models.CleanFolderName(folder)

	event, err := s.metadata.Load(ctx, folder)
	if err != nil {
		return models.EventView{}, fmt.Errorf("%s: %w", op, err)
	}

	images, err := s.images.ListImages(ctx, folder)
	if err != nil {
		s.log.Warn("failed to list event images", slog.String("op", op), slog.String("folder", folder), sl.Err(err))
		images = []models.GalleryImage{}
	}

	s.countView(folder)

	return models.EventView{Event: event, Images: images}, nil
}

func (s *EventService) countView(folder string) {
	s.bg.Add(1)

	go func() {
		defer s.bg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.display.ViewTimeout)
		defer cancel()

		if _, err := s.views.Increment(ctx, folder, models.CounterViews, true); err != nil {
			s.log.Warn("failed to count view", slog.String("folder", folder), sl.Err(err))
		}
	}()
}

// Wait дожидается фоновых инкрементов просмотров
func (s *EventService) Wait() {
	s.bg.Wait()
}
