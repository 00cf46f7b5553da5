package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("API_GATEWAY_JWT_SECRET", "0123456789abcdef")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, "http://pricing-service:8083", cfg.Services.PricingURL)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("API_GATEWAY_JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("API_GATEWAY_JWT_SECRET", "0123456789abcdef")
	t.Setenv("CONTENT_SERVICE_URL", "content-service:8084")
	_, err = Load()
	assert.Error(t, err)
}
