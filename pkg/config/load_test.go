package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/pkg/config"
)

type sample struct {
	Name  string `yaml:"name" env:"SAMPLE_NAME" env-default:"default"`
	Count int    `yaml:"count" env:"SAMPLE_COUNT" env-default:"1"`
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "from-env")

	cfg, err := config.Load[sample](context.Background(), "sample", "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, 1, cfg.Count)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-file\ncount: 7\n"), 0o600))

	cfg, err := config.Load[sample](context.Background(), "sample", path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Name)
	assert.Equal(t, 7, cfg.Count)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-file\n"), 0o600))
	t.Setenv("SAMPLE_NAME", "from-env")

	cfg, err := config.Load[sample](context.Background(), "sample", path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Name)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load[sample](context.Background(), "sample", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	t.Setenv("SAMPLE_COUNT", "many")
	_, err = config.Load[sample](context.Background(), "sample", "")
	require.Error(t, err)
}
