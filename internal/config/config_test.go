package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFrom_DefaultsWhenNoFiles(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.BaseURL, cfg.BaseURL)
	assert.Equal(t, 15000, cfg.RequestTimeoutMs)
	assert.False(t, cfg.LogCalls)
}

func TestLoadFrom_LaterFileOverridesEarlier(t *testing.T) {
	global := writeConfig(t, t.TempDir(), "base_url: https://global.example.com/v1/\nrequest_timeout_ms: 5000\n")
	project := writeConfig(t, t.TempDir(), "base_url: https://project.example.com/v1\n")

	cfg, err := LoadFrom(global, project)
	require.NoError(t, err)

	assert.Equal(t, "https://project.example.com/v1", cfg.BaseURL)
	assert.Equal(t, 5000, cfg.RequestTimeoutMs)
}

func TestLoadFrom_EnvOverridesFiles(t *testing.T) {
	file := writeConfig(t, t.TempDir(), "base_url: https://file.example.com/v1\nlog_calls: false\n")
	t.Setenv("TASKBOARD_BASE_URL", "https://env.example.com/v1")
	t.Setenv("TASKBOARD_LOG_CALLS", "true")

	cfg, err := LoadFrom(file)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/v1", cfg.BaseURL)
	assert.True(t, cfg.LogCalls)
}

func TestLoadFrom_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("TASKBOARD_REQUEST_TIMEOUT_MS", "-3")

	cfg, err := LoadFrom()
	require.NoError(t, err)

	assert.Equal(t, 15000, cfg.RequestTimeoutMs)
}

func TestLoadFrom_MalformedFileErrors(t *testing.T) {
	bad := writeConfig(t, t.TempDir(), "base_url: [unterminated\n")

	_, err := LoadFrom(bad)
	assert.Error(t, err)
}

func TestConfig_DBPathUnderStateDir(t *testing.T) {
	cfg := Config{StateDir: "/tmp/tb"}
	assert.Equal(t, filepath.Join("/tmp/tb", "taskboard.db"), cfg.DBPath())
}
