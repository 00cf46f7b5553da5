package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "sitecms/backend/libs/config"
	"sitecms/backend/services/pricing-service/internal/pricing"
)

// Config defines pricing service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"PRICING_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN         string `yaml:"dsn" env:"PRICING_POSTGRES_DSN"`
		AutoMigrate bool   `yaml:"autoMigrate" env:"PRICING_AUTO_MIGRATE"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret" env:"PRICING_JWT_SECRET"`
	} `yaml:"jwt"`
	Redis struct {
		Addr     string        `yaml:"addr" env:"PRICING_REDIS_ADDR"`
		Password string        `yaml:"password" env:"PRICING_REDIS_PASSWORD"`
		DB       int           `yaml:"db" env:"PRICING_REDIS_DB"`
		TierTTL  time.Duration `yaml:"tierTtl" env:"PRICING_TIER_CACHE_TTL"`
	} `yaml:"redis"`
	Tiers pricing.GeneratorConfig `yaml:"tiers" env:"PRICING_TIERS"`
}

// Load configuration from file/env.
func Load() (*Config, error) {
	cfg := &Config{Tiers: pricing.DefaultGeneratorConfig()}
	cfg.HTTP.Port = "8083"
	cfg.Redis.TierTTL = 10 * time.Minute

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	if _, err := pricing.GenerateTiers(cfg.Tiers); err != nil {
		return nil, fmt.Errorf("config: tiers: %w", err)
	}
	if cfg.Redis.TierTTL <= 0 {
		cfg.Redis.TierTTL = 10 * time.Minute
	}
	return cfg, nil
}

// HTTPAddress returns :port style string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8083"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// RedisEnabled reports whether a tier cache should be used.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}
