package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes/config"
	"gonotes/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
	assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "notes:", cfg.Redis.KeyPrefix)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NOTES_HTTP_HOST", "127.0.0.1")
	t.Setenv("NOTES_HTTP_PORT", "8081")
	t.Setenv("NOTES_LOGGER_MODE", "development")
	t.Setenv("NOTES_GRACEFUL_SHUTDOWN_TIMEOUT", "12")
	t.Setenv("NOTES_REDIS_ENABLED", "true")
	t.Setenv("NOTES_REDIS_DEFAULT_TTL", "30s")

	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.HTTP.GetAddress())
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
	assert.Equal(t, 12*time.Second, cfg.Shutdown.GetTimeout())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.DefaultTTL)
}

func TestLoadPortFallback(t *testing.T) {
	t.Setenv("PORT", "4000")

	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.HTTP.Port)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.yaml")
	content := []byte("http:\n  port: 9090\nlogging:\n  level: debug\nredis:\n  host: cache\n  port: 6380\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "cache:6380", cfg.Redis.GetAddress())
}

func TestLoadInvalid(t *testing.T) {
	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("NOTES_HTTP_PORT", "not-a-number")

		cfg, err := config.Load(context.Background(), "")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, config.ErrFailedLoadConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg, err := config.Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Nil(t, cfg)
	})
}
