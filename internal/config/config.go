// Package config loads client settings from YAML files and TASKBOARD_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TASKBOARD_BASE_URL.
const EnvPrefix = "TASKBOARD"

// Config holds all client configuration.
type Config struct {
	BaseURL          string
	StateDir         string
	RequestTimeoutMs int
	LogCalls         bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:          "http://localhost:3000/v1",
		StateDir:         defaultStateDir(),
		RequestTimeoutMs: 15000,
		LogCalls:         false,
	}
}

// Load reads ~/.taskboard/config.yaml, then ./.taskboard/config.yaml, then
// environment variables. Later sources override earlier ones.
func Load() (Config, error) {
	var files []string
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".taskboard", "config.yaml"))
	}
	if cwd, err := os.Getwd(); err == nil {
		files = append(files, filepath.Join(cwd, ".taskboard", "config.yaml"))
	}
	return LoadFrom(files...)
}

// LoadFrom is Load with explicit config file paths. Missing files are skipped.
func LoadFrom(files ...string) (Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("state_dir", def.StateDir)
	v.SetDefault("request_timeout_ms", def.RequestTimeoutMs)
	v.SetDefault("log_calls", def.LogCalls)

	for _, path := range files {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return def, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg := Config{
		BaseURL:          strings.TrimRight(v.GetString("base_url"), "/"),
		StateDir:         expandHome(v.GetString("state_dir")),
		RequestTimeoutMs: v.GetInt("request_timeout_ms"),
		LogCalls:         v.GetBool("log_calls"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.StateDir == "" {
		cfg.StateDir = def.StateDir
	}
	if cfg.RequestTimeoutMs <= 0 {
		cfg.RequestTimeoutMs = def.RequestTimeoutMs
	}
	return cfg, nil
}

// DBPath returns the path of the durable session database.
func (c Config) DBPath() string {
	return filepath.Join(c.StateDir, "taskboard.db")
}

// RequestTimeout returns the per-request timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskboard"
	}
	return filepath.Join(home, ".taskboard")
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
