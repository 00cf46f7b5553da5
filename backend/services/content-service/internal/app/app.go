package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libhttp "sitecms/backend/libs/httpserver"
	libredis "sitecms/backend/libs/redis"
	"sitecms/backend/services/content-service/internal/cache"
	"sitecms/backend/services/content-service/internal/config"
	"sitecms/backend/services/content-service/internal/db"
	httpserver "sitecms/backend/services/content-service/internal/http"
	"sitecms/backend/services/content-service/internal/http/handlers"
	"sitecms/backend/services/content-service/internal/repository"
	"sitecms/backend/services/content-service/internal/service"
	"sitecms/backend/services/content-service/internal/ws"
)

// App wires content service dependencies.
type App struct {
	server  *libhttp.Server
	hub     *ws.Hub
	cache   *cache.StyleCache
	content *service.ContentService
	bus     *cache.RedisInvalidationBus
	db      *sqlx.DB
	redis   *goredis.Client
	logger  *zap.Logger
}

// New constructs application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(ctx, cfg.Database.DSN, cfg.Database.AutoMigrate, logger)
	if err != nil {
		return nil, err
	}
	a := &App{db: sqlDB, logger: logger}

	var snapshots cache.SnapshotStore
	if cfg.RedisEnabled() {
		client, err := libredis.NewRedisClient(ctx, libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("redis unavailable, shared style snapshot disabled", zap.Error(err))
		} else {
			a.redis = client
			snapshots = cache.NewRedisSnapshotStore(client, cfg.Redis.SnapshotTTL)
			a.bus = cache.NewRedisInvalidationBus(client, uuid.NewString(), logger)
		}
	}

	styleRepo := repository.NewStyleRepository(sqlDB)
	tokenRepo := repository.NewTokenRepository(sqlDB)
	a.cache = cache.NewStyleCache(repository.NewSnapshotLoader(styleRepo, tokenRepo), snapshots, logger)
	a.hub = ws.NewHub(cfg.WebSocket.PingInterval, logger)

	a.content = service.NewContentService(styleRepo, tokenRepo, a.cache, a.hub, logger)
	if a.bus != nil {
		a.content.WithPublisher(a.bus)
	}
	styles := handlers.NewStylesHandler(a.content, cfg.JWT.Secret, logger)

	routes := httpserver.Routes{
		ListStyles:    styles.List,
		ResolveStyle:  styles.Resolve,
		GetStyle:      styles.Get,
		PutStyle:      styles.Put,
		DeleteStyle:   styles.Delete,
		Tokens:        handlers.NewTokensHandler(a.content, logger),
		TokenContrast: handlers.NewContrastHandler(a.content, logger),
		WebSocket:     ws.NewHandler(a.hub, cfg.WebSocket.AllowedOrigins, cfg.WebSocket.WriteTimeout, logger),
		Health:        handlers.NewHealthHandler(sqlDB),
	}

	router := httpserver.NewRouter(routes)
	a.server = libhttp.NewServer(cfg.HTTPAddress(), router, logger,
		libhttp.RecoveryMiddleware(logger),
		libhttp.LoggingMiddleware(logger),
	)
	return a, nil
}

// Run loads the style cache, follows writes made by other instances and serves HTTP until ctx is
// cancelled. A failed initial load leaves the cache in the error state; resolution then answers
// with caller defaults.
func (a *App) Run(ctx context.Context) error {
	if err := a.cache.Load(ctx); err != nil {
		a.logger.Warn("initial style load failed", zap.Error(err))
	}
	go a.hub.Start(ctx)
	if a.bus != nil {
		go func() {
			if err := a.bus.Subscribe(ctx, a.content.ApplyInvalidation); err != nil && ctx.Err() == nil {
				a.logger.Error("style invalidation subscription stopped", zap.Error(err))
			}
		}()
	}
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
