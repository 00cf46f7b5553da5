package app

import (
	"context"

	"go.uber.org/zap"

	libhttp "sitecms/backend/libs/httpserver"
	"sitecms/backend/services/api-gateway/internal/clients"
	"sitecms/backend/services/api-gateway/internal/config"
	httpserver "sitecms/backend/services/api-gateway/internal/http"
	"sitecms/backend/services/api-gateway/internal/http/handlers"
	"sitecms/backend/services/api-gateway/internal/http/middleware"
)

// App wires the gateway.
type App struct {
	server *libhttp.Server
	logger *zap.Logger
}

// New constructs the gateway graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	httpClient := clients.NewDefaultHTTPClient(cfg.HTTPTimeout())

	pricing := clients.NewServiceClient("pricing", cfg.Services.PricingURL, httpClient)
	content := clients.NewServiceClient("content", cfg.Services.ContentURL, httpClient)
	auth := clients.NewServiceClient("auth", cfg.Services.AuthURL, httpClient)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Pricing:       handlers.NewProxy(pricing, logger),
		Content:       handlers.NewProxy(content, logger),
		Auth:          handlers.NewProxy(auth, logger),
		HealthHandler: handlers.NewHealthHandler(pricing, content, auth),
	}, middleware.AuthMiddleware(cfg.JWT.Secret))

	server := libhttp.NewServer(cfg.HTTPAddress(), router, logger,
		libhttp.RecoveryMiddleware(logger),
		libhttp.LoggingMiddleware(logger),
	)
	return &App{server: server, logger: logger}, nil
}

// Run serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close is a no-op; the gateway holds no pooled resources.
func (a *App) Close() {}
