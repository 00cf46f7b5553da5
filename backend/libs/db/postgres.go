package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// DriverName is the database/sql driver registered by pgx/stdlib.
const DriverName = "pgx"

const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 5
	defaultConnLifetime = time.Hour
	defaultConnIdleTime = 30 * time.Minute
	defaultPingTimeout  = 5 * time.Second
	defaultMaxElapsed   = 2 * time.Minute
	defaultMaxInterval  = 15 * time.Second
)

// NewPostgresDB opens a pgx/stdlib backed *sql.DB pool and pings it, retrying with exponential
// backoff while the database comes up.
func NewPostgresDB(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("db: empty DSN")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnLifetime)
	db.SetConnMaxIdleTime(defaultConnIdleTime)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = defaultMaxElapsed
	policy.MaxInterval = defaultMaxInterval

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
		defer cancel()
		return db.PingContext(pingCtx)
	}
	notify := func(err error, next time.Duration) {
		logger.Warn("postgres not reachable, retrying", zap.Error(err), zap.Duration("next_attempt_in", next))
	}

	if err := backoff.RetryNotify(ping, backoff.WithContext(policy, ctx), notify); err != nil {
		db.Close()
		return nil, fmt.Errorf("db: ping: %w", err)
	}

	return db, nil
}

// Wrap exposes an existing pool through sqlx for struct scanning.
func Wrap(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, DriverName)
}
