package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "sitecms/backend/libs/config"
)

// Config represents service configuration loaded from YAML/env.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"AUTH_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN         string `yaml:"dsn" env:"AUTH_POSTGRES_DSN"`
		AutoMigrate bool   `yaml:"autoMigrate" env:"AUTH_AUTO_MIGRATE"`
	} `yaml:"database"`
	JWT struct {
		Secret           string `yaml:"secret" env:"AUTH_JWT_SECRET"`
		ExpiresInMinutes int    `yaml:"expiresInMinutes" env:"AUTH_JWT_EXPIRES_MINUTES"`
	} `yaml:"jwt"`
	// AdminEmails are granted the admin role when they sign up.
	AdminEmails []string `yaml:"adminEmails" env:"AUTH_ADMIN_EMAILS"`
	BcryptCost  int      `yaml:"bcryptCost" env:"AUTH_BCRYPT_COST"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8081"
	cfg.JWT.ExpiresInMinutes = 60

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if len(cfg.JWT.Secret) < 16 {
		return nil, errors.New("config: jwt secret must be at least 16 characters")
	}
	if cfg.JWT.ExpiresInMinutes <= 0 {
		cfg.JWT.ExpiresInMinutes = 60
	}

	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8081"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// JWTExpiration converts configured expiry to duration.
func (c *Config) JWTExpiration() time.Duration {
	if c.JWT.ExpiresInMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}
