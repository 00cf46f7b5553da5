package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "sitecms/backend/libs/config"
)

// Config defines gateway configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"API_GATEWAY_HTTP_PORT"`
	} `yaml:"http"`
	JWT struct {
		Secret string `yaml:"secret" env:"API_GATEWAY_JWT_SECRET"`
	} `yaml:"jwt"`
	Services struct {
		AuthURL    string `yaml:"authUrl" env:"AUTH_SERVICE_URL"`
		PricingURL string `yaml:"pricingUrl" env:"PRICING_SERVICE_URL"`
		ContentURL string `yaml:"contentUrl" env:"CONTENT_SERVICE_URL"`
	} `yaml:"services"`
	HTTPClient struct {
		TimeoutSeconds int `yaml:"timeoutSeconds" env:"API_GATEWAY_HTTP_TIMEOUT"`
	} `yaml:"httpClient"`
}

// Load configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.HTTPClient.TimeoutSeconds = 5
	cfg.Services.AuthURL = "http://auth-service:8081"
	cfg.Services.PricingURL = "http://pricing-service:8083"
	cfg.Services.ContentURL = "http://content-service:8084"

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	for name, url := range map[string]string{
		"auth":    cfg.Services.AuthURL,
		"pricing": cfg.Services.PricingURL,
		"content": cfg.Services.ContentURL,
	} {
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return nil, fmt.Errorf("config: %s service url %q must be http(s)", name, url)
		}
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// HTTPTimeout returns http client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPClient.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.HTTPClient.TimeoutSeconds) * time.Second
}
