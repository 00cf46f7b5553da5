package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "sitecms/backend/libs/config"
)

// Config defines content service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"CONTENT_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN         string `yaml:"dsn" env:"CONTENT_POSTGRES_DSN"`
		AutoMigrate bool   `yaml:"autoMigrate" env:"CONTENT_AUTO_MIGRATE"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret" env:"CONTENT_JWT_SECRET"`
	} `yaml:"jwt"`
	Redis struct {
		Addr        string        `yaml:"addr" env:"CONTENT_REDIS_ADDR"`
		Password    string        `yaml:"password" env:"CONTENT_REDIS_PASSWORD"`
		DB          int           `yaml:"db" env:"CONTENT_REDIS_DB"`
		SnapshotTTL time.Duration `yaml:"snapshotTtl" env:"CONTENT_SNAPSHOT_TTL"`
	} `yaml:"redis"`
	WebSocket struct {
		AllowedOrigins []string      `yaml:"allowedOrigins" env:"CONTENT_WS_ALLOWED_ORIGINS"`
		PingInterval   time.Duration `yaml:"pingInterval" env:"CONTENT_WS_PING_INTERVAL"`
		WriteTimeout   time.Duration `yaml:"writeTimeout" env:"CONTENT_WS_WRITE_TIMEOUT"`
	} `yaml:"websocket"`
}

// Load configuration from file/env.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8084"
	cfg.Redis.SnapshotTTL = 5 * time.Minute
	cfg.WebSocket.PingInterval = 30 * time.Second
	cfg.WebSocket.WriteTimeout = 10 * time.Second

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	if cfg.Redis.SnapshotTTL <= 0 {
		cfg.Redis.SnapshotTTL = 5 * time.Minute
	}
	return cfg, nil
}

// HTTPAddress returns :port style string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8084"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// RedisEnabled reports whether the shared snapshot store should be used.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}
