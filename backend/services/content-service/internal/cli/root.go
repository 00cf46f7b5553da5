// Package cli implements the sitectl maintenance commands.
package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	libconfig "sitecms/backend/libs/config"
	libdb "sitecms/backend/libs/db"
	libredis "sitecms/backend/libs/redis"
	"sitecms/backend/services/content-service/internal/cache"
)

type settings struct {
	Database struct {
		DSN string `yaml:"dsn" env:"CONTENT_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"CONTENT_REDIS_ADDR"`
		Password string `yaml:"password" env:"CONTENT_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"CONTENT_REDIS_DB"`
	} `yaml:"redis"`
}

type runtime struct {
	dsn    string
	redis  libredis.Options
	out    io.Writer
	logger *zap.Logger
}

// NewRootCommand builds the sitectl command tree writing human output to out.
func NewRootCommand(out io.Writer, logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	rt := &runtime{out: out, logger: logger}

	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Maintenance tasks for the site backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var s settings
			if err := libconfig.LoadConfig(&s); err != nil {
				return err
			}
			if rt.dsn == "" {
				rt.dsn = s.Database.DSN
			}
			rt.redis = libredis.Options{Addr: s.Redis.Addr, Password: s.Redis.Password, DB: s.Redis.DB}
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&rt.dsn, "dsn", "", "postgres DSN (defaults to CONTENT_POSTGRES_DSN)")

	root.AddCommand(newMigrateCommand(rt), newTokensCommand(rt))
	return root
}

func (rt *runtime) open(ctx context.Context) (*sqlx.DB, error) {
	if strings.TrimSpace(rt.dsn) == "" {
		return nil, errors.New("no database configured: pass --dsn or set CONTENT_POSTGRES_DSN")
	}
	sqlDB, err := libdb.NewPostgresDB(ctx, rt.dsn, rt.logger)
	if err != nil {
		return nil, err
	}
	return libdb.Wrap(sqlDB), nil
}

// publisher connects to redis when configured so running servers refresh after a CLI write. The
// returned func closes the connection.
func (rt *runtime) publisher(ctx context.Context) (*cache.RedisInvalidationBus, func()) {
	if strings.TrimSpace(rt.redis.Addr) == "" {
		return nil, func() {}
	}
	client, err := libredis.NewRedisClient(ctx, rt.redis)
	if err != nil {
		rt.logger.Warn("redis unavailable, running servers will not be notified", zap.Error(err))
		return nil, func() {}
	}
	return cache.NewRedisInvalidationBus(client, "sitectl", rt.logger), func() { _ = client.Close() }
}
