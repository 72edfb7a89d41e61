package http

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"photofolio/internal/domain/models"
	"photofolio/internal/lib/logger/sl"
	"photofolio/internal/metrics"
	"photofolio/internal/storage"
	"photofolio/internal/transport/http/dto"
	"photofolio/internal/transport/http/dto/request"
	"photofolio/internal/transport/http/dto/response"

	_ "photofolio/docs"
)

type AuthService interface {
	Login(ctx context.Context, password string) (models.Admin, *models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context) error
}

type TokenService interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	ParseAccessToken(accessToken string) (models.Admin, error)
}

type MediaService interface {
	UploadMedia(ctx context.Context, folder string, file *multipart.FileHeader) (models.UploadResult, error)
	DeleteMedia(ctx context.Context, publicID string) error
	FolderImages(ctx context.Context, folder string) ([]models.GalleryImage, error)
	RootFolders(ctx context.Context) ([]string, error)
}

type MetadataService interface {
	Save(ctx context.Context, folder string, fields models.EventFields) (models.UploadResult, error)
	Load(ctx context.Context, folder string) (models.Event, error)
}

type StatsService interface {
	Increment(ctx context.Context, folder string, counter models.Counter, up bool) (int, error)
}

type EventService interface {
	Create(ctx context.Context, in models.EventUpload) (models.UploadResult, error)
	Update(ctx context.Context, folder string, fields models.EventFields) (models.Event, error)
	Delete(ctx context.Context, folder string) error
	ListSurface(ctx context.Context, surface models.Surface, withImages bool) (models.Listing, error)
	ListAll(ctx context.Context) (models.Listing, error)
	Detail(ctx context.Context, folder string) (models.EventView, error)
}

// HealthChecker проверка доступности внешней зависимости
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

const (
	SessionName     = "session"
	SessionAdminKey = "admin_session"
)

type Routers struct {
	log             *slog.Logger
	AuthService     AuthService
	TokenService    TokenService
	MediaService    MediaService
	MetadataService MetadataService
	StatsService    StatsService
	EventService    EventService
	health          map[string]HealthChecker
}

func NewRouter(
	log *slog.Logger,
	authService AuthService,
	tokenService TokenService,
	mediaService MediaService,
	metadataService MetadataService,
	statsService StatsService,
	eventService EventService,
) *Routers {
	return &Routers{
		log:             log,
		AuthService:     authService,
		TokenService:    tokenService,
		MediaService:    mediaService,
		MetadataService: metadataService,
		StatsService:    statsService,
		EventService:    eventService,
		health:          make(map[string]HealthChecker),
	}
}

// WithHealthCheck добавляет зависимость в ответ /health
func (r *Routers) WithHealthCheck(name string, hc HealthChecker) *Routers {
	r.health[name] = hc
	return r
}

// fail переводит ошибку сервиса в HTTP-ответ по ее виду
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error, notFound string) error {
	switch models.KindOf(err) {
	case models.KindValidation:
		return c.JSON(http.StatusBadRequest, response.Error(validationMessage(err)))
	case models.KindNotFound:
		return c.JSON(http.StatusNotFound, response.Error(notFound))
	case models.KindUnauthorized:
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	log.Error("request failed", sl.Err(err))

	return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(response.ErrInternal.Error, err.Error()))
}

func validationMessage(err error) string {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, storage.ErrInvalidFileType):
		return "Only image files are allowed"
	case errors.Is(err, storage.ErrFileTooLarge):
		return "File is too large"
	case errors.Is(err, storage.ErrFolderEmpty):
		return "Folder parameter is required"
	}

	return err.Error()
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}

	return c.Validate(req)
}

func badRequest(c echo.Context, log *slog.Logger, err error) error {
	log.Warn("invalid request", sl.Err(err))

	return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.ErrInvalidRequestFormat.Error, err.Error()))
}

// Login godoc
// @Summary Вход администратора
// @Description Проверяет пароль администратора, открывает сессию (cookie) и выдает пару JWT-токенов.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Пароль администратора"
// @Success 200 {object} response.TokenResponse "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль"
// @Router /api/admin/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, log, err)
	}

	admin, tokens, err := r.AuthService.Login(c.Request().Context(), req.Password)
	if err != nil {
		log.Info("login failed", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	sess, err := session.Get(SessionName, c)
	if err == nil {
		sess.Values[SessionAdminKey] = admin.SessionID
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			log.Warn("failed to save session", sl.Err(err))
		}
	}

	return c.JSON(http.StatusOK, response.TokenResponse{Success: true, TokenPair: *tokens})
}

// Refresh godoc
// @Summary Обновление токенов
// @Description Меняет действующий refresh-токен на новую пару токенов.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.RefreshRequest true "Refresh-токен"
// @Success 200 {object} response.TokenResponse
// @Failure 401 {object} response.ErrorResponse "Недействительный refresh-токен"
// @Router /api/admin/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.RefreshRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, log, err)
	}

	newTokens, err := r.TokenService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		log.Info("error refresh tokens", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.Error("Invalid refresh token"))
	}

	return c.JSON(http.StatusOK, response.TokenResponse{Success: true, TokenPair: *newTokens})
}

// Logout godoc
// @Summary Выход администратора
// @Description Завершает сессию и отзывает refresh-токен, если он передан.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.LogoutRequest false "Refresh-токен"
// @Success 200 {object} response.Response
// @Router /api/admin/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LogoutRequest
	_ = c.Bind(&req)

	if err := r.AuthService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		log.Warn("failed to revoke refresh token", sl.Err(err))
	}

	clearSession(c)

	return c.JSON(http.StatusOK, response.SuccessResponse())
}

// LogoutAll godoc
// @Summary Выход со всех устройств
// @Description Отзывает refresh-токены всех сессий администратора и завершает текущую сессию.
// @Description Выданные access-токены действуют до истечения своего срока.
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/logout-all [post]
func (r *Routers) LogoutAll(c echo.Context) error {
	const op = "http.routers.LogoutAll"

	log := r.log.With(
		slog.String("op", op),
	)

	if err := r.AuthService.LogoutAll(c.Request().Context()); err != nil {
		return r.fail(c, log, err, "Session not found")
	}

	clearSession(c)

	return c.JSON(http.StatusOK, response.SuccessResponse())
}

func clearSession(c echo.Context) {
	if sess, err := session.Get(SessionName, c); err == nil {
		delete(sess.Values, SessionAdminKey)
		sess.Options.MaxAge = -1
		_ = sess.Save(c.Request(), c.Response())
	}
}

// UploadMedia godoc
// @Summary Загрузка изображения
// @Description Загружает изображение в папку события. Пустая папка заменяется на "events".
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Изображение"
// @Param folder formData string false "Папка события"
// @Success 200 {object} response.UploadResponse
// @Failure 400 {object} response.ErrorResponse "Файл не передан или не является изображением"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Security ApiKeyAuth
// @Router /api/upload [post]
func (r *Routers) UploadMedia(c echo.Context) error {
	const op = "http.routers.UploadMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	startTime := time.Now()

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("empty file in request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.Error("No file provided"))
	}

	log.Debug("got file for upload",
		slog.String("filename", file.Filename),
		slog.Int64("size", file.Size),
	)

	res, err := r.MediaService.UploadMedia(c.Request().Context(), c.FormValue("folder"), file)
	if err != nil {
		return r.fail(c, log, err, "Folder not found")
	}

	metrics.ImagesUploadedTotal.Inc()

	log.Info("upload successful",
		slog.String("public_id", res.PublicID),
		slog.Duration("duration", time.Since(startTime)),
	)

	return c.JSON(http.StatusOK, response.UploadResponse{
		Success:  true,
		URL:      res.URL,
		PublicID: res.PublicID,
		Folder:   res.Folder,
	})
}

// DeleteMedia godoc
// @Summary Удаление изображения
// @Tags media
// @Accept json
// @Produce json
// @Param request body dto.DeleteMediaInput true "publicId изображения"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Изображение не найдено"
// @Security ApiKeyAuth
// @Router /api/upload [delete]
func (r *Routers) DeleteMedia(c echo.Context) error {
	const op = "http.routers.DeleteMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.DeleteMediaInput
	if err := bind(c, &req); err != nil {
		return badRequest(c, log, err)
	}

	if err := r.MediaService.DeleteMedia(c.Request().Context(), req.PublicID); err != nil {
		return r.fail(c, log, err, "Image not found")
	}

	return c.JSON(http.StatusOK, response.SuccessResponse())
}

// SaveMetadata godoc
// @Summary Сохранение метаданных события
// @Description Полностью перезаписывает metadata.json папки; likes и views сбрасываются в 0.
// @Tags metadata
// @Accept json
// @Produce json
// @Param request body dto.MetadataInput true "Запись события"
// @Success 200 {object} response.MetadataSavedResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/metadata [post]
func (r *Routers) SaveMetadata(c echo.Context) error {
	const op = "http.routers.SaveMetadata"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.MetadataInput
	if err := bind(c, &req); err != nil {
		return badRequest(c, log, err)
	}

	res, err := r.MetadataService.Save(c.Request().Context(), req.FolderName, req.EventFieldsInput.ToDomain())
	if err != nil {
		return r.fail(c, log, err, "Metadata not found")
	}

	return c.JSON(http.StatusOK, response.MetadataSavedResponse{
		Success:     true,
		Message:     "Metadata saved successfully",
		Folder:      res.Folder,
		MetadataURL: res.URL,
		PublicID:    res.PublicID,
	})
}

// GetMetadata godoc
// @Summary Метаданные события
// @Tags metadata
// @Produce json
// @Param folder query string true "Папка события"
// @Success 200 {object} response.MetadataResponse
// @Failure 400 {object} response.ErrorResponse "Не указана папка"
// @Failure 404 {object} response.ErrorResponse "Метаданные не найдены"
// @Router /api/metadata [get]
func (r *Routers) GetMetadata(c echo.Context) error {
	const op = "http.routers.GetMetadata"

	log := r.log.With(
		slog.String("op", op),
	)

	folder := c.QueryParam("folder")
	if models.CleanFolderName(folder) == "" {
		return c.JSON(http.StatusBadRequest, response.Error("Folder parameter is required"))
	}

	event, err := r.MetadataService.Load(c.Request().Context(), folder)
	if err != nil {
		return r.fail(c, log, err, response.ErrMetadataNotFound.Error)
	}

	return c.JSON(http.StatusOK, response.MetadataResponse{Success: true, Metadata: event})
}

// UpdateStats godoc
// @Summary Изменение счетчика лайков или просмотров
// @Description Меняет один счетчик на единицу. Без поля increment счетчик увеличивается.
// @Tags stats
// @Accept json
// @Produce json
// @Param request body dto.UpdateStatsInput true "Папка, счетчик и направление"
// @Success 200 {object} map[string]any "Новое значение, например {\"success\":true,\"likes\":6}"
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Router /api/update-stats [post]
func (r *Routers) UpdateStats(c echo.Context) error {
	const op = "http.routers.UpdateStats"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UpdateStatsInput
	if err := bind(c, &req); err != nil {
		return badRequest(c, log, err)
	}

	value, err := r.StatsService.Increment(c.Request().Context(), req.FolderName, models.Counter(req.Type), req.Up())
	if err != nil {
		metrics.CounterUpdatesTotal.WithLabelValues(req.Type, "error").Inc()
		return r.fail(c, log, err, "Event not found")
	}

	metrics.CounterUpdatesTotal.WithLabelValues(req.Type, "ok").Inc()

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		req.Type:  value,
	})
}

// FolderImages godoc
// @Summary Изображения папки события
// @Tags media
// @Produce json
// @Param folder query string true "Папка события"
// @Success 200 {object} response.FolderImagesResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/folder-images [get]
func (r *Routers) FolderImages(c echo.Context) error {
	const op = "http.routers.FolderImages"

	log := r.log.With(
		slog.String("op", op),
	)

	folder := models.CleanFolderName(c.QueryParam("folder"))

	images, err := r.MediaService.FolderImages(c.Request().Context(), folder)
	if err != nil {
		return r.fail(c, log, err, "Folder not found")
	}

	return c.JSON(http.StatusOK, response.FolderImagesResponse{
		Success: true,
		Folder:  folder,
		Images:  images,
		Count:   len(images),
	})
}

// Folders godoc
// @Summary Папки верхнего уровня хранилища
// @Tags media
// @Produce json
// @Success 200 {object} response.FoldersResponse
// @Router /api/folders [get]
func (r *Routers) Folders(c echo.Context) error {
	const op = "http.routers.Folders"

	log := r.log.With(
		slog.String("op", op),
	)

	folders, err := r.MediaService.RootFolders(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err, "Folders not found")
	}

	return c.JSON(http.StatusOK, response.FoldersResponse{
		Success: true,
		Folders: folders,
		Count:   len(folders),
	})
}

// CreateEvent godoc
// @Summary Создание события
// @Description Проверяет форму (папка, обложка, хотя бы одно изображение галереи), сохраняет метаданные и регистрирует папку в индексе.
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventInput true "Форма события"
// @Success 201 {object} response.EventCreatedResponse
// @Failure 400 {object} response.ErrorResponse "Первая нарушенная проверка формы"
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/events [post]
func (r *Routers) CreateEvent(c echo.Context) error {
	const op = "http.routers.CreateEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateEventInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	res, err := r.EventService.Create(c.Request().Context(), req.ToDomain())
	if err != nil {
		return r.fail(c, log, err, "Event not found")
	}

	metrics.EventsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, response.EventCreatedResponse{
		Success:     true,
		Folder:      res.Folder,
		MetadataURL: res.URL,
		PublicID:    res.PublicID,
	})
}

// ListEvents godoc
// @Summary События раздела сайта
// @Tags events
// @Produce json
// @Param surface query string true "Раздел" Enums(blogs, recent-works, library)
// @Param images query boolean false "Добавить изображения папок"
// @Success 200 {object} response.EventsResponse
// @Failure 400 {object} response.ErrorResponse "Неизвестный раздел"
// @Router /api/events [get]
func (r *Routers) ListEvents(c echo.Context) error {
	const op = "http.routers.ListEvents"

	log := r.log.With(
		slog.String("op", op),
	)

	surface, ok := models.ParseSurface(c.QueryParam("surface"))
	if !ok {
		return c.JSON(http.StatusBadRequest, response.Error("surface must be one of blogs, recent-works, library"))
	}

	withImages, _ := strconv.ParseBool(c.QueryParam("images"))

	listing, err := r.EventService.ListSurface(c.Request().Context(), surface, withImages)
	if err != nil {
		return r.fail(c, log, err, "Events not found")
	}

	return c.JSON(http.StatusOK, eventsResponse(listing))
}

// ListAllEvents godoc
// @Summary Все события индекса
// @Tags events
// @Produce json
// @Success 200 {object} response.EventsResponse
// @Security ApiKeyAuth
// @Router /api/admin/events [get]
func (r *Routers) ListAllEvents(c echo.Context) error {
	const op = "http.routers.ListAllEvents"

	log := r.log.With(
		slog.String("op", op),
	)

	listing, err := r.EventService.ListAll(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err, "Events not found")
	}

	return c.JSON(http.StatusOK, eventsResponse(listing))
}

func eventsResponse(listing models.Listing) response.EventsResponse {
	return response.EventsResponse{
		Success:     true,
		Events:      listing.Events,
		Count:       len(listing.Events),
		Placeholder: listing.Placeholder,
	}
}

// GetEvent godoc
// @Summary Страница события
// @Description Возвращает событие с изображениями и засчитывает просмотр.
// @Tags events
// @Produce json
// @Param folder path string true "Папка события"
// @Success 200 {object} response.EventResponse
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Router /api/events/{folder} [get]
func (r *Routers) GetEvent(c echo.Context) error {
	const op = "http.routers.GetEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	view, err := r.EventService.Detail(c.Request().Context(), c.Param("folder"))
	if err != nil {
		return r.fail(c, log, err, "Event not found")
	}

	return c.JSON(http.StatusOK, response.EventResponse{
		Success: true,
		Event:   view.Event,
		Images:  view.Images,
	})
}

// UpdateEvent godoc
// @Summary Редактирование события
// @Description Перезаписывает поля и флаги; лайки, просмотры и дата создания сохраняются.
// @Tags events
// @Accept json
// @Produce json
// @Param folder path string true "Папка события"
// @Param request body dto.EventFieldsInput true "Поля события"
// @Success 200 {object} response.MetadataResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/events/{folder} [put]
func (r *Routers) UpdateEvent(c echo.Context) error {
	const op = "http.routers.UpdateEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.EventFieldsInput
	if err := bind(c, &req); err != nil {
		return badRequest(c, log, err)
	}

	event, err := r.EventService.Update(c.Request().Context(), c.Param("folder"), req.ToDomain())
	if err != nil {
		return r.fail(c, log, err, "Event not found")
	}

	return c.JSON(http.StatusOK, response.MetadataResponse{Success: true, Metadata: event})
}

// DeleteEvent godoc
// @Summary Удаление события из индекса
// @Description Метаданные и изображения остаются в хранилище.
// @Tags events
// @Produce json
// @Param folder path string true "Папка события"
// @Success 200 {object} response.Response
// @Security ApiKeyAuth
// @Router /api/events/{folder} [delete]
func (r *Routers) DeleteEvent(c echo.Context) error {
	const op = "http.routers.DeleteEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	if err := r.EventService.Delete(c.Request().Context(), c.Param("folder")); err != nil {
		return r.fail(c, log, err, "Event not found")
	}

	return c.JSON(http.StatusOK, response.SuccessResponse())
}

// Health godoc
// @Summary Проверка состояния
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}
	code := http.StatusOK

	for name, hc := range r.health {
		if err := hc.HealthCheck(ctx); err != nil {
			status[name] = err.Error()
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "ok"
	}

	return c.JSON(code, status)
}
