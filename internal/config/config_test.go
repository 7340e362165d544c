package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 5, cfg.Schedule.DefaultDurationDays)
	assert.Equal(t, 2000, cfg.Schedule.AutosaveQuietMS)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lath.yaml")
	content := []byte("db:\n  driver: postgres\n  url: postgres://localhost/lath\nschedule:\n  default_duration_days: 3\n")
	require.NoError(t, os.WriteFile(path, content, 0644))
	t.Setenv("LATH_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://localhost/lath", cfg.DB.URL)
	assert.Equal(t, 3, cfg.Schedule.DefaultDurationDays)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lath.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  driver: postgres\n"), 0644))
	t.Setenv("LATH_CONFIG", path)
	t.Setenv("LATH_DB_DRIVER", "sqlite")
	t.Setenv("LATH_DB_PATH", "/tmp/override.db")
	t.Setenv("LATH_AUTOSAVE_QUIET_MS", "50")
	t.Setenv("LATH_DEFAULT_DURATION_DAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/override.db", cfg.DB.Path)
	assert.Equal(t, 50, cfg.Schedule.AutosaveQuietMS)
	assert.Equal(t, 7, cfg.Schedule.DefaultDurationDays)
}

func TestLoad_RejectsBadDurationEnv(t *testing.T) {
	t.Setenv("LATH_DEFAULT_DURATION_DAYS", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("LATH_DB_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}
