package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"photofolio/internal/domain/models"
	"photofolio/internal/lib/logger/handlers/slogdiscard"
	"photofolio/internal/storage"
	httpapp "photofolio/internal/transport/http"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, password string) (models.Admin, *models.TokenPair, error) {
	args := m.Called(ctx, password)
	if args.Get(1) == nil {
		return args.Get(0).(models.Admin), nil, args.Error(2)
	}
	return args.Get(0).(models.Admin), args.Get(1).(*models.TokenPair), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockAuthService) LogoutAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockTokenService struct{ mock.Mock }

func (m *MockTokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

func (m *MockTokenService) ParseAccessToken(accessToken string) (models.Admin, error) {
	args := m.Called(accessToken)
	return args.Get(0).(models.Admin), args.Error(1)
}

type MockMediaService struct{ mock.Mock }

func (m *MockMediaService) UploadMedia(ctx context.Context, folder string, file *multipart.FileHeader) (models.UploadResult, error) {
	args := m.Called(ctx, folder, file)
	return args.Get(0).(models.UploadResult), args.Error(1)
}

func (m *MockMediaService) DeleteMedia(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

func (m *MockMediaService) FolderImages(ctx context.Context, folder string) ([]models.GalleryImage, error) {
	args := m.Called(ctx, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GalleryImage), args.Error(1)
}

func (m *MockMediaService) RootFolders(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMetadataService struct{ mock.Mock }

func (m *MockMetadataService) Save(ctx context.Context, folder string, fields models.EventFields) (models.UploadResult, error) {
	args := m.Called(ctx, folder, fields)
	return args.Get(0).(models.UploadResult), args.Error(1)
}

func (m *MockMetadataService) Load(ctx context.Context, folder string) (models.Event, error) {
	args := m.Called(ctx, folder)
	return args.Get(0).(models.Event), args.Error(1)
}

type MockStatsService struct{ mock.Mock }

func (m *MockStatsService) Increment(ctx context.Context, folder string, counter models.Counter, up bool) (int, error) {
	args := m.Called(ctx, folder, counter, up)
	return args.Int(0), args.Error(1)
}

type MockEventService struct{ mock.Mock }

func (m *MockEventService) Create(ctx context.Context, in models.EventUpload) (models.UploadResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.UploadResult), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, folder string, fields models.EventFields) (models.Event, error) {
	args := m.Called(ctx, folder, fields)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventService) Delete(ctx context.Context, folder string) error {
	return m.Called(ctx, folder).Error(0)
}

func (m *MockEventService) ListSurface(ctx context.Context, surface models.Surface, withImages bool) (models.Listing, error) {
	args := m.Called(ctx, surface, withImages)
	return args.Get(0).(models.Listing), args.Error(1)
}

func (m *MockEventService) ListAll(ctx context.Context) (models.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Listing), args.Error(1)
}

func (m *MockEventService) Detail(ctx context.Context, folder string) (models.EventView, error) {
	args := m.Called(ctx, folder)
	return args.Get(0).(models.EventView), args.Error(1)
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

type RoutersSuite struct {
	suite.Suite
	e        *echo.Echo
	auth     *MockAuthService
	tokens   *MockTokenService
	media    *MockMediaService
	metadata *MockMetadataService
	stats    *MockStatsService
	events   *MockEventService
	routers  *httpapp.Routers
}

func (s *RoutersSuite) SetupTest() {
	s.auth = new(MockAuthService)
	s.tokens = new(MockTokenService)
	s.media = new(MockMediaService)
	s.metadata = new(MockMetadataService)
	s.stats = new(MockStatsService)
	s.events = new(MockEventService)

	s.routers = httpapp.NewRouter(slogdiscard.NewDiscardLogger(), s.auth, s.tokens, s.media, s.metadata, s.stats, s.events)

	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))

	e.POST("/api/admin/login", s.routers.Login)
	e.POST("/api/admin/refresh", s.routers.Refresh)
	e.POST("/api/admin/logout", s.routers.Logout)
	e.POST("/api/admin/logout-all", s.routers.LogoutAll)
	e.POST("/api/upload", s.routers.UploadMedia)
	e.DELETE("/api/upload", s.routers.DeleteMedia)
	e.POST("/api/metadata", s.routers.SaveMetadata)
	e.GET("/api/metadata", s.routers.GetMetadata)
	e.POST("/api/update-stats", s.routers.UpdateStats)
	e.GET("/api/folder-images", s.routers.FolderImages)
	e.GET("/api/folders", s.routers.Folders)
	e.POST("/api/events", s.routers.CreateEvent)
	e.GET("/api/events", s.routers.ListEvents)
	e.GET("/api/admin/events", s.routers.ListAllEvents)
	e.GET("/api/events/:folder", s.routers.GetEvent)
	e.PUT("/api/events/:folder", s.routers.UpdateEvent)
	e.DELETE("/api/events/:folder", s.routers.DeleteEvent)
	e.GET("/health", s.routers.Health)

	s.e = e
}

func (s *RoutersSuite) TearDownTest() {
	s.auth.AssertExpectations(s.T())
	s.tokens.AssertExpectations(s.T())
	s.media.AssertExpectations(s.T())
	s.metadata.AssertExpectations(s.T())
	s.stats.AssertExpectations(s.T())
	s.events.AssertExpectations(s.T())
}

func TestRoutersSuite(t *testing.T) {
	suite.Run(t, new(RoutersSuite))
}

func (s *RoutersSuite) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *RoutersSuite) TestLogin_Success() {
	pair := &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}
	s.auth.On("Login", mock.Anything, "secret").Return(models.Admin{SessionID: "sid-1"}, pair, nil)

	rec := s.do(http.MethodPost, "/api/admin/login", `{"password":"secret"}`)

	s.Equal(http.StatusOK, rec.Code)
	body := decode(s.T(), rec)
	s.Equal(true, body["success"])
	s.Equal("access", body["accessToken"])
	s.Equal("refresh", body["refreshToken"])
	s.NotEmpty(rec.Header().Get("Set-Cookie"))
}

func (s *RoutersSuite) TestLogin_WrongPassword() {
	s.auth.On("Login", mock.Anything, "nope").Return(models.Admin{}, nil, models.ErrUnauthorized)

	rec := s.do(http.MethodPost, "/api/admin/login", `{"password":"nope"}`)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(false, decode(s.T(), rec)["success"])
}

func (s *RoutersSuite) TestLogin_MissingPassword() {
	rec := s.do(http.MethodPost, "/api/admin/login", `{}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.auth.AssertNotCalled(s.T(), "Login", mock.Anything, mock.Anything)
}

func (s *RoutersSuite) TestRefresh() {
	s.tokens.On("RefreshTokens", mock.Anything, "old").Return(&models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil).Once()
	s.tokens.On("RefreshTokens", mock.Anything, "stale").Return(nil, errors.New("invalid")).Once()

	rec := s.do(http.MethodPost, "/api/admin/refresh", `{"refreshToken":"old"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("r2", decode(s.T(), rec)["refreshToken"])

	rec = s.do(http.MethodPost, "/api/admin/refresh", `{"refreshToken":"stale"}`)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RoutersSuite) TestLogoutAll() {
	s.auth.On("LogoutAll", mock.Anything).Return(nil).Once()
	s.auth.On("LogoutAll", mock.Anything).Return(errors.New("redis down")).Once()

	rec := s.do(http.MethodPost, "/api/admin/logout-all", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(true, decode(s.T(), rec)["success"])

	rec = s.do(http.MethodPost, "/api/admin/logout-all", "")
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *RoutersSuite) TestLogout() {
	s.auth.On("Logout", mock.Anything, "r1").Return(nil)

	rec := s.do(http.MethodPost, "/api/admin/logout", `{"refreshToken":"r1"}`)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(true, decode(s.T(), rec)["success"])
}

func multipartBody(t *testing.T, folder string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	if withFile {
		part, err := w.CreateFormFile("file", "photo.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("folder", folder))
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func (s *RoutersSuite) upload(folder string, withFile bool) *httptest.ResponseRecorder {
	body, ct := multipartBody(s.T(), folder, withFile)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *RoutersSuite) TestUploadMedia_Success() {
	res := models.UploadResult{URL: "http://cdn/wedding/a.png", PublicID: "wedding/a.png", Folder: "wedding"}
	s.media.On("UploadMedia", mock.Anything, "wedding", mock.AnythingOfType("*multipart.FileHeader")).Return(res, nil)

	rec := s.upload("wedding", true)

	s.Equal(http.StatusOK, rec.Code)
	body := decode(s.T(), rec)
	s.Equal(true, body["success"])
	s.Equal("wedding/a.png", body["publicId"])
	s.Equal("http://cdn/wedding/a.png", body["url"])
	s.Equal("wedding", body["folder"])
}

func (s *RoutersSuite) TestUploadMedia_NoFile() {
	rec := s.upload("wedding", false)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("No file provided", decode(s.T(), rec)["error"])
}

func (s *RoutersSuite) TestUploadMedia_NotAnImage() {
	s.media.On("UploadMedia", mock.Anything, "wedding", mock.Anything).
		Return(models.UploadResult{}, fmt.Errorf("upload: %w", storage.ErrInvalidFileType))

	rec := s.upload("wedding", true)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Only image files are allowed", decode(s.T(), rec)["error"])
}

func (s *RoutersSuite) TestUploadMedia_StoreFailure() {
	s.media.On("UploadMedia", mock.Anything, "wedding", mock.Anything).
		Return(models.UploadResult{}, errors.New("connection refused"))

	rec := s.upload("wedding", true)

	s.Equal(http.StatusInternalServerError, rec.Code)
	body := decode(s.T(), rec)
	s.Equal(false, body["success"])
	s.Equal("connection refused", body["details"])
}

func (s *RoutersSuite) TestDeleteMedia() {
	s.media.On("DeleteMedia", mock.Anything, "wedding/a.png").Return(nil).Once()
	s.media.On("DeleteMedia", mock.Anything, "wedding/gone.png").Return(storage.ErrNotFound).Once()

	rec := s.do(http.MethodDelete, "/api/upload", `{"publicId":"wedding/a.png"}`)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/upload", `{"publicId":"wedding/gone.png"}`)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RoutersSuite) TestSaveMetadata() {
	fields := models.EventFields{Title: "Anna & Tom", Category: models.CategoryWedding, AddToBlogs: true}
	res := models.UploadResult{URL: "http://cdn/wedding/metadata.json?v=1", PublicID: "wedding/metadata.json", Folder: "wedding"}
	s.metadata.On("Save", mock.Anything, "wedding", fields).Return(res, nil)

	rec := s.do(http.MethodPost, "/api/metadata", `{"folderName":"wedding","title":"Anna & Tom","category":"Wedding","addToBlogs":true}`)

	s.Equal(http.StatusOK, rec.Code)
	body := decode(s.T(), rec)
	s.Equal("Metadata saved successfully", body["message"])
	s.Equal("wedding/metadata.json", body["publicId"])
	s.Equal(res.URL, body["metadataUrl"])
}

func (s *RoutersSuite) TestSaveMetadata_Invalid() {
	rec := s.do(http.MethodPost, "/api/metadata", `{"title":"no folder"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/metadata", `{"folderName":"x","category":"Birthday"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RoutersSuite) TestGetMetadata() {
	event := models.Event{FolderName: "wedding", Likes: 5}
	s.metadata.On("Load", mock.Anything, "wedding").Return(event, nil).Once()
	s.metadata.On("Load", mock.Anything, "missing").Return(models.Event{}, models.ErrEventNotFound).Once()

	rec := s.do(http.MethodGet, "/api/metadata?folder=wedding", "")
	s.Equal(http.StatusOK, rec.Code)
	meta := decode(s.T(), rec)["metadata"].(map[string]any)
	s.Equal(float64(5), meta["likes"])

	rec = s.do(http.MethodGet, "/api/metadata?folder=missing", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("Metadata not found", decode(s.T(), rec)["error"])

	rec = s.do(http.MethodGet, "/api/metadata", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RoutersSuite) TestUpdateStats() {
	s.stats.On("Increment", mock.Anything, "wedding", models.CounterLikes, true).Return(6, nil).Once()
	s.stats.On("Increment", mock.Anything, "wedding", models.CounterViews, false).Return(0, nil).Once()

	rec := s.do(http.MethodPost, "/api/update-stats", `{"folderName":"wedding","type":"likes","increment":true}`)
	s.Equal(http.StatusOK, rec.Code)
	body := decode(s.T(), rec)
	s.Equal(true, body["success"])
	s.Equal(float64(6), body["likes"])

	rec = s.do(http.MethodPost, "/api/update-stats", `{"folderName":"wedding","type":"views","increment":false}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(float64(0), decode(s.T(), rec)["views"])
}

func (s *RoutersSuite) TestUpdateStats_DefaultsToIncrement() {
	s.stats.On("Increment", mock.Anything, "wedding", models.CounterViews, true).Return(1, nil)

	rec := s.do(http.MethodPost, "/api/update-stats", `{"folderName":"wedding","type":"views"}`)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RoutersSuite) TestUpdateStats_Errors() {
	rec := s.do(http.MethodPost, "/api/update-stats", `{"folderName":"wedding","type":"shares"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.stats.On("Increment", mock.Anything, "missing", models.CounterLikes, true).Return(0, models.ErrEventNotFound)
	rec = s.do(http.MethodPost, "/api/update-stats", `{"folderName":"missing","type":"likes"}`)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RoutersSuite) TestFolderImagesAndFolders() {
	images := []models.GalleryImage{{URL: "u1", PublicID: "wedding/1.jpg"}, {URL: "u2", PublicID: "wedding/2.jpg"}}
	s.media.On("FolderImages", mock.Anything, "wedding").Return(images, nil)
	s.media.On("RootFolders", mock.Anything).Return([]string{"wedding", "portrait"}, nil)

	rec := s.do(http.MethodGet, "/api/folder-images?folder=wedding", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(float64(2), decode(s.T(), rec)["count"])

	rec = s.do(http.MethodGet, "/api/folders", "")
	s.Equal(http.StatusOK, rec.Code)
	body := decode(s.T(), rec)
	s.Equal([]any{"wedding", "portrait"}, body["folders"])
}

func (s *RoutersSuite) TestFolderImages_EmptyFolder() {
	s.media.On("FolderImages", mock.Anything, "").Return(nil, storage.ErrFolderEmpty)

	rec := s.do(http.MethodGet, "/api/folder-images", "")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Folder parameter is required", decode(s.T(), rec)["error"])
}

func (s *RoutersSuite) TestCreateEvent() {
	in := models.EventUpload{
		FolderName:    "wedding",
		Fields:        models.EventFields{Title: "T", CoverImage: "http://cdn/wedding/c.jpg", AddToRecentWorks: true},
		GalleryImages: []string{"http://cdn/wedding/1.jpg"},
	}
	s.events.On("Create", mock.Anything, in).Return(models.UploadResult{PublicID: "wedding/metadata.json", Folder: "wedding"}, nil)

	rec := s.do(http.MethodPost, "/api/events",
		`{"folderName":"wedding","title":"T","coverImage":"http://cdn/wedding/c.jpg","addToRecentWorks":true,"galleryImages":["http://cdn/wedding/1.jpg"]}`)

	s.Equal(http.StatusCreated, rec.Code)
	s.Equal("wedding", decode(s.T(), rec)["folder"])
}

func (s *RoutersSuite) TestCreateEvent_ValidationMessage() {
	s.events.On("Create", mock.Anything, mock.Anything).
		Return(models.UploadResult{}, models.NewValidationError("coverImage", "Please upload a cover image"))

	rec := s.do(http.MethodPost, "/api/events", `{"folderName":"wedding"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Please upload a cover image", decode(s.T(), rec)["error"])
}

func (s *RoutersSuite) TestListEvents() {
	listing := models.Listing{Events: []models.EventView{{Event: models.Event{FolderName: "a"}}}}
	s.events.On("ListSurface", mock.Anything, models.SurfaceRecentWorks, true).Return(listing, nil)

	rec := s.do(http.MethodGet, "/api/events?surface=recent-works&images=true", "")

	s.Equal(http.StatusOK, rec.Code)
	body := decode(s.T(), rec)
	s.Equal(float64(1), body["count"])
	s.Equal(false, body["placeholder"])
}

func (s *RoutersSuite) TestListEvents_UnknownSurface() {
	rec := s.do(http.MethodGet, "/api/events?surface=shop", "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RoutersSuite) TestListAllEvents_Placeholder() {
	s.events.On("ListAll", mock.Anything).Return(models.Listing{Placeholder: true, Events: []models.EventView{{}}}, nil)

	rec := s.do(http.MethodGet, "/api/admin/events", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(true, decode(s.T(), rec)["placeholder"])
}

func (s *RoutersSuite) TestGetEvent() {
	view := models.EventView{
		Event:  models.Event{FolderName: "wedding", Views: 3},
		Images: []models.GalleryImage{{PublicID: "wedding/1.jpg"}},
	}
	s.events.On("Detail", mock.Anything, "wedding").Return(view, nil).Once()
	s.events.On("Detail", mock.Anything, "missing").Return(models.EventView{}, models.ErrEventNotFound).Once()

	rec := s.do(http.MethodGet, "/api/events/wedding", "")
	s.Equal(http.StatusOK, rec.Code)
	body := decode(s.T(), rec)
	s.Len(body["images"], 1)

	rec = s.do(http.MethodGet, "/api/events/missing", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RoutersSuite) TestUpdateAndDeleteEvent() {
	fields := models.EventFields{Title: "New", AddToLibrary: true}
	s.events.On("Update", mock.Anything, "wedding", fields).Return(models.Event{FolderName: "wedding", EventFields: fields, Likes: 4}, nil)
	s.events.On("Delete", mock.Anything, "wedding").Return(nil)

	rec := s.do(http.MethodPut, "/api/events/wedding", `{"title":"New","addToLibrary":true}`)
	s.Equal(http.StatusOK, rec.Code)
	meta := decode(s.T(), rec)["metadata"].(map[string]any)
	s.Equal(float64(4), meta["likes"])

	rec = s.do(http.MethodDelete, "/api/events/wedding", "")
	s.Equal(http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	routers := httpapp.NewRouter(slogdiscard.NewDiscardLogger(), nil, nil, nil, nil, nil, nil).
		WithHealthCheck("redis", healthFunc(func(context.Context) error { return nil })).
		WithHealthCheck("postgres", healthFunc(func(context.Context) error { return errors.New("down") }))

	e := echo.New()
	e.GET("/health", routers.Health)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "ok", body["redis"])
	assert.Equal(t, "down", body["postgres"])
}
