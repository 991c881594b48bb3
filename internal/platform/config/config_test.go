package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRY_DURATION", "")
	t.Setenv("LEDGER_TIMEZONE", "")
	t.Setenv("IS_PRODUCTION", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, time.UTC.String(), cfg.LedgerLocation.String())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")
	t.Setenv("LEDGER_TIMEZONE", "Europe/Kyiv")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "Europe/Kyiv", cfg.LedgerLocation.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.GoogleEnabled())
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_DURATION", "soon")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("bad timezone", func(t *testing.T) {
		t.Setenv("LEDGER_TIMEZONE", "Mars/Olympus")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
	t.Run("default secret in production", func(t *testing.T) {
		t.Setenv("IS_PRODUCTION", "true")
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
