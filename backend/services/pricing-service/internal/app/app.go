package app

import (
	"context"
	"database/sql"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libhttp "sitecms/backend/libs/httpserver"
	libredis "sitecms/backend/libs/redis"
	"sitecms/backend/services/pricing-service/internal/cache"
	"sitecms/backend/services/pricing-service/internal/config"
	"sitecms/backend/services/pricing-service/internal/db"
	httpserver "sitecms/backend/services/pricing-service/internal/http"
	"sitecms/backend/services/pricing-service/internal/http/handlers"
	"sitecms/backend/services/pricing-service/internal/repository"
	"sitecms/backend/services/pricing-service/internal/service"
)

// App wires pricing service dependencies.
type App struct {
	server *libhttp.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New constructs application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(ctx, cfg.Database.DSN, cfg.Database.AutoMigrate, logger)
	if err != nil {
		return nil, err
	}

	a := &App{db: sqlDB, logger: logger}

	var tierCache service.TierCache
	if cfg.RedisEnabled() {
		client, err := libredis.NewRedisClient(ctx, libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// the tier cache is optional; reads go straight to postgres without it
			logger.Warn("redis unavailable, tier cache disabled", zap.Error(err))
		} else {
			a.redis = client
			tierCache = cache.NewTierCache(client, cfg.Redis.TierTTL)
		}
	}

	tierRepo := repository.NewTierRepository(sqlDB)
	tierService := service.NewTierService(tierRepo, tierCache, cfg.Tiers, logger)
	pricingService := service.NewPricingService(tierService, logger)

	tiersHandler := handlers.NewTiersHandler(tierService, cfg.JWT.Secret, logger)
	routes := httpserver.Routes{
		Calculate:   handlers.NewCalculateHandler(pricingService, logger),
		GetTiers:    tiersHandler.Get,
		PutTiers:    tiersHandler.Put,
		DeleteTiers: tiersHandler.Delete,
		ExportTiers: handlers.NewExportHandler(pricingService, logger),
		Currencies:  handlers.NewCurrenciesHandler(),
		Health:      handlers.NewHealthHandler(sqlDB),
	}

	router := httpserver.NewRouter(routes)
	a.server = libhttp.NewServer(cfg.HTTPAddress(), router, logger,
		libhttp.RecoveryMiddleware(logger),
		libhttp.LoggingMiddleware(logger),
	)
	return a, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
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
