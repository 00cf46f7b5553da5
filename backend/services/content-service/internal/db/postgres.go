package db

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	libdb "sitecms/backend/libs/db"
	"sitecms/backend/migrations"
)

// NewPostgres returns an sqlx handle over the shared pool, applying migrations first when migrate
// is set.
func NewPostgres(ctx context.Context, dsn string, migrate bool, logger *zap.Logger) (*sqlx.DB, error) {
	sqlDB, err := libdb.NewPostgresDB(ctx, dsn, logger)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := migrations.Up(ctx, sqlDB, logger); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}
	return libdb.Wrap(sqlDB), nil
}
