package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, 2000, cfg.Input.YearMin)
	assert.Equal(t, 2100, cfg.Input.YearMax)
	assert.Equal(t, 2022, cfg.Input.DefaultYear)
	assert.Equal(t, "1", cfg.Input.DefaultStation)
	assert.Equal(t, "artifacts/pollution_model.json", cfg.Artifacts.ModelPath)
	assert.Equal(t, ":8501", cfg.Server.Addr)
	assert.ErrorIs(t, cfg.RequireTelegram(), ErrMissingToken)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("YEAR_MIN", "2010")
	t.Setenv("YEAR_MAX", "2050")
	t.Setenv("ARTIFACT_BUNDLE", "/srv/artifacts.db")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 2010, cfg.Input.YearMin)
	assert.Equal(t, 2050, cfg.Input.YearMax)
	assert.Equal(t, "/srv/artifacts.db", cfg.Artifacts.BundlePath)
	assert.NoError(t, cfg.RequireTelegram())
}

func TestLoad_DotEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DEFAULT_STATION=17\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DEFAULT_STATION") })

	cfg, err := load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "17", cfg.Input.DefaultStation)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown environment": {"APP_ENV": "qa"},
		"inverted year range": {"YEAR_MIN": "2100", "YEAR_MAX": "2000"},
		"bad log level":       {"LOG_LEVEL": "verbose"},
		"non numeric year":    {"YEAR_MIN": "soon"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
