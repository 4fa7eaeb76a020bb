package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBothSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_ACCESS_SECRET", "access")
	t.Setenv("AUTH_REFRESH_SECRET", "refresh")
}

func TestLoadFailsWithoutSecrets(t *testing.T) {
	t.Run("both missing", func(t *testing.T) {
		t.Setenv("AUTH_ACCESS_SECRET", "")
		t.Setenv("AUTH_REFRESH_SECRET", "")
		_, err := Load()
		require.ErrorIs(t, err, ErrMissingSecrets)
	})

	t.Run("refresh missing", func(t *testing.T) {
		t.Setenv("AUTH_ACCESS_SECRET", "access")
		t.Setenv("AUTH_REFRESH_SECRET", "")
		_, err := Load()
		require.ErrorIs(t, err, ErrMissingSecrets)
	})

	t.Run("access missing", func(t *testing.T) {
		t.Setenv("AUTH_ACCESS_SECRET", "")
		t.Setenv("AUTH_REFRESH_SECRET", "refresh")
		_, err := Load()
		require.ErrorIs(t, err, ErrMissingSecrets)
	})
}

func TestLoadDefaults(t *testing.T) {
	setBothSecrets(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, 100, cfg.RateLimit.GeneralMax)
	assert.Equal(t, 5, cfg.RateLimit.AuthMax)
}

func TestLoadOverrides(t *testing.T) {
	setBothSecrets(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_DAYS", "30")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.RefreshTokenTTL())
	assert.False(t, cfg.RateLimit.Enabled)
}
