package app

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	libhttp "sitecms/backend/libs/httpserver"
	"sitecms/backend/services/auth-service/internal/config"
	"sitecms/backend/services/auth-service/internal/db"
	httpserver "sitecms/backend/services/auth-service/internal/http"
	"sitecms/backend/services/auth-service/internal/http/handlers"
	"sitecms/backend/services/auth-service/internal/password"
	"sitecms/backend/services/auth-service/internal/repository"
	"sitecms/backend/services/auth-service/internal/service"
)

// App wires dependencies for the auth service.
type App struct {
	server *libhttp.Server
	db     *sql.DB
	logger *zap.Logger
}

// New builds application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(ctx, cfg.Database.DSN, cfg.Database.AutoMigrate, logger)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(sqlDB)
	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())
	authSvc := service.NewAuthService(userRepo, hasher, tokenSvc, cfg.AdminEmails, logger)

	users := handlers.NewUsersHandler(authSvc, tokenSvc, logger)
	routes := httpserver.Routes{
		Signup:  handlers.NewSignupHandler(authSvc, logger),
		Login:   handlers.NewLoginHandler(authSvc, tokenSvc.ExpiresIn(), logger),
		Me:      users.Me,
		SetRole: users.SetRole,
		Health:  handlers.NewHealthHandler(sqlDB),
	}

	router := httpserver.NewRouter(routes)
	server := libhttp.NewServer(cfg.HTTPAddress(), router, logger,
		libhttp.RecoveryMiddleware(logger),
		libhttp.LoggingMiddleware(logger),
	)

	return &App{
		server: server,
		db:     sqlDB,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
