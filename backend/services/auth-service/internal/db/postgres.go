package db

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	libdb "sitecms/backend/libs/db"
	"sitecms/backend/migrations"
)

// NewPostgres returns shared DB connection, applying migrations first when migrate is set.
func NewPostgres(ctx context.Context, dsn string, migrate bool, logger *zap.Logger) (*sql.DB, error) {
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
	return sqlDB, nil
}
