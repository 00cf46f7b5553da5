package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed *.sql
var files embed.FS

const dialect = "postgres"

func prepare() error {
	goose.SetBaseFS(files)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migrations: set dialect: %w", err)
	}
	return nil
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	if err := prepare(); err != nil {
		return err
	}
	logger.Info("running database migrations")
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}
	logger.Info("database migrations completed")
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	if err := prepare(); err != nil {
		return err
	}
	logger.Info("rolling back last migration")
	if err := goose.DownContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations: down: %w", err)
	}
	return nil
}

// Status prints the applied/pending state of every migration through goose's logger.
func Status(ctx context.Context, db *sql.DB) error {
	if err := prepare(); err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations: status: %w", err)
	}
	return nil
}
