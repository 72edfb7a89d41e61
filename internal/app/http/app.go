package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"photofolio/internal/config"
	"photofolio/internal/lib/logger/sl"
	appmiddleware "photofolio/internal/middleware"
	httprouters "photofolio/internal/transport/http"
	"photofolio/internal/transport/http/dto/response"
)

// multipart-заголовки поверх самого файла
const multipartOverhead = 1 << 20

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// newSessionStore cookie-хранилище сессии администратора, недоступное из JS
func newSessionStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return store
}

type Server struct {
	m          *http.ServeMux
	log        *slog.Logger
	e          *echo.Echo
	routers    *httprouters.Routers
	cfg        config.HTTPConfig
	uploadsDir string
}

// New собирает echo с общими middleware. uploadsDir раздается как /uploads,
// когда изображения лежат на локальном диске; пустая строка отключает раздачу.
func New(log *slog.Logger, cfg config.HTTPConfig, sessionSecret, uploadsDir string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(session.Middleware(newSessionStore(sessionSecret)))

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	if cfg.MaxUploadSize > 0 {
		e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.MaxUploadSize+multipartOverhead, 10)))
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", sl.Err(err))
	}

	return &Server{
		m:          mux,
		log:        log,
		e:          e,
		routers:    routers,
		cfg:        cfg,
		uploadsDir: uploadsDir,
	}
}

// Handler отдает echo целиком, используется в тестах
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.cfg.Host, s.cfg.Port)
}

func (s *Server) Stop(ctx context.Context) error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTTL)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

// adminOnlyMiddleware пропускает запрос с сессией администратора или с действующим access-токеном
func (s *Server) adminOnlyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sess, err := session.Get(httprouters.SessionName, c); err == nil {
			if sid, ok := sess.Values[httprouters.SessionAdminKey].(string); ok && sid != "" {
				return next(c)
			}
		}

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
		}

		if _, err := s.routers.TokenService.ParseAccessToken(token); err != nil {
			s.log.Debug("rejected access token", sl.Err(err))
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
		}

		return next(c)
	}
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if s.uploadsDir != "" {
		s.e.Static("/uploads", s.uploadsDir)
	}

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.e.Group("/api")
	{
		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/login", s.routers.Login)
			adminGroup.POST("/refresh", s.routers.Refresh)
			adminGroup.POST("/logout", s.routers.Logout)
			adminGroup.POST("/logout-all", s.routers.LogoutAll, s.adminOnlyMiddleware)
			adminGroup.GET("/events", s.routers.ListAllEvents, s.adminOnlyMiddleware)
		}

		api.GET("/metadata", s.routers.GetMetadata)
		api.POST("/update-stats", s.routers.UpdateStats)
		api.GET("/folder-images", s.routers.FolderImages)
		api.GET("/folders", s.routers.Folders)
		api.GET("/events", s.routers.ListEvents)
		api.GET("/events/:folder", s.routers.GetEvent)

		adminOnly := s.adminOnlyMiddleware
		api.POST("/upload", s.routers.UploadMedia, adminOnly)
		api.DELETE("/upload", s.routers.DeleteMedia, adminOnly)
		api.POST("/metadata", s.routers.SaveMetadata, adminOnly)
		api.POST("/events", s.routers.CreateEvent, adminOnly)
		api.PUT("/events/:folder", s.routers.UpdateEvent, adminOnly)
		api.DELETE("/events/:folder", s.routers.DeleteEvent, adminOnly)
	}
}
