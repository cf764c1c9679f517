package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL:    "postgres://dispatch@localhost:5432/dispatch",
		SQLitePath:     "runs.db",
		PublishSheetID: "sheet123",
		Solver: SolverConfig{
			MaxSteps: 100000,
			Timeout:  30 * time.Second,
			Parallel: true,
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{SQLitePath: "runs.db"}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_InvalidDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "not a url"}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_NegativeMaxSteps(t *testing.T) {
	cfg := &Config{Solver: SolverConfig{MaxSteps: -1}}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath(t *testing.T) {
	t.Run("parses solver settings", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site_dispatch_config.yaml")
		content := `
publishSheetID: sheet123
solver:
  maxSteps: 5000
  timeout: 10s
  parallel: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadFromPath(path)
		require.NoError(t, err)

		assert.Equal(t, "sheet123", cfg.PublishSheetID)
		assert.Equal(t, 5000, cfg.Solver.MaxSteps)
		assert.Equal(t, 10*time.Second, cfg.Solver.Timeout)
		assert.True(t, cfg.Solver.Parallel)
		assert.Empty(t, cfg.DatabaseURL)
	})

	t.Run("defaults the sqlite path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site_dispatch_config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("solver: {}\n"), 0644))

		cfg, err := LoadFromPath(path)
		require.NoError(t, err)

		assert.Equal(t, "site_dispatch.db", cfg.SQLitePath)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site_dispatch_config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("solver: [unclosed"), 0644))

		_, err := LoadFromPath(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestLoadWithEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	require.NoError(t, os.WriteFile("site_dispatch_config.test.yaml", []byte("sqlitePath: test.db\n"), 0644))

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "test.db", cfg.SQLitePath)

	_, err = LoadWithEnv("prod")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "site_dispatch_config.prod.yaml not found")
}
