package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "photofolio/internal/app/http"
	"photofolio/internal/config"
	"photofolio/internal/lib/logger/sl"
	"photofolio/internal/repository"
	"photofolio/internal/services/auth"
	events "photofolio/internal/services/event_service"
	media "photofolio/internal/services/media_service"
	metadata "photofolio/internal/services/metadata_service"
	stats "photofolio/internal/services/stats_service"
	tokens "photofolio/internal/services/token_service"
	"photofolio/internal/storage/objectstore"
	"photofolio/internal/storage/postgresql"
	redisapp "photofolio/internal/storage/redis"
	httprouters "photofolio/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	log    *slog.Logger
	events *events.EventService
	redis  *redisapp.Client
	pg     *postgresql.Storage
}

// New поднимает хранилища по конфигу и собирает сервисы. Redis и Postgres
// подключаются только если заданы их адреса.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	a := &App{log: log}

	if cfg.Redis.RedisAddr != "" {
		rdb, err := redisapp.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.redis = rdb
	}

	if cfg.Postgres.DSN != "" {
		pg, err := postgresql.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.pg = pg

		if err := pg.Migrate(ctx); err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	store, err := objectstore.New(cfg.ObjectStore, cfg.FileStorage)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo, err := repository.NewRepository(cfg.FolderIndex, a.redis, a.pg)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metadataService := metadata.NewMetadataService(log, store)
	statsService := stats.NewStatsService(log, metadataService, repo.Locker)
	a.events = events.NewEventService(log, metadataService, store, repo.Folders, repo.Locker, statsService, cfg.Display)
	tokenService := tokens.NewTokenService(repo.Tokens, cfg.Auth.TokenSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	authService := auth.New(log, cfg.Auth.AdminPasswordHash, tokenService)
	mediaService := media.NewMediaService(log, store, cfg.HTTP.MaxUploadSize)

	routers := httprouters.NewRouter(log, authService, tokenService, mediaService, metadataService, statsService, a.events)
	if a.redis != nil {
		routers.WithHealthCheck("redis", a.redis)
	}
	if a.pg != nil {
		routers.WithHealthCheck("postgres", a.pg)
	}

	uploadsDir := ""
	if d := cfg.ObjectStore.Driver; d == objectstore.DriverLocal || d == "" {
		uploadsDir = cfg.FileStorage.BaseDir
	}

	a.HTTPServer = httpapp.New(log, cfg.HTTP, cfg.Auth.SessionSecret, uploadsDir, routers)
	a.HTTPServer.BuildRouters()

	log.Info("application assembled",
		slog.String("object_store", cfg.ObjectStore.Driver),
		slog.String("folder_index", cfg.FolderIndex.Driver),
		slog.Bool("redis", a.redis != nil),
		slog.Bool("postgres", a.pg != nil),
	)

	return a, nil
}

// Stop останавливает HTTP, дожидается фоновых просмотров и закрывает соединения
func (a *App) Stop(ctx context.Context) {
	const op = "app.Stop"

	if err := a.HTTPServer.Stop(ctx); err != nil {
		a.log.Error("failed to stop http server", slog.String("op", op), sl.Err(err))
	}

	a.events.Wait()
	a.close()
}

func (a *App) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("failed to close redis", sl.Err(err))
		}
	}

	if a.pg != nil {
		a.pg.Stop()
	}
}
