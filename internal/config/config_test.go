package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_EnvDefaultsMatchNewConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log-level: debug
http:
  addr: ":9000"
  read-timeout: 2s
redis:
  enabled: true
  addr: "cache:6379"
  db: 3
  ttl: 30m
library:
  path: /data/games.json
  workers: 4
parse:
  disambiguation: strict
  unresolved: keep-board
  line-length: 60
  max-nodes: 500
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout, "unset keys keep their defaults")
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 30*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "/data/games.json", cfg.Library.Path)
	assert.Equal(t, 4, cfg.WorkerCount())
	assert.Equal(t, 60, cfg.Parse.LineLength)

	opts, err := cfg.ParseOptions()
	require.NoError(t, err)
	assert.Equal(t, engine.Strict, opts.Disambiguation)
	assert.Equal(t, engine.KeepBoard, opts.Unresolved)
	assert.Equal(t, 500, opts.MaxNodes)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "http:\n  addr: \":9000\"\n")
	t.Setenv("PGNVIEW_HTTP_ADDR", ":7000")
	t.Setenv("PGNVIEW_DISAMBIGUATION", "strict")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, "strict", cfg.Parse.Disambiguation)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	path := writeConfig(t, "parse:\n  unresolved: guess\n")
	_, err = Load(path)
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"disambiguation", func(c *Config) { c.Parse.Disambiguation = "best" }},
		{"unresolved", func(c *Config) { c.Parse.Unresolved = "" }},
		{"line length", func(c *Config) { c.Parse.LineLength = -1 }},
		{"max nodes", func(c *Config) { c.Parse.MaxNodes = -1 }},
		{"workers", func(c *Config) { c.Library.Workers = -2 }},
		{"redis addr", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }},
		{"redis ttl", func(c *Config) { c.Redis.TTL = -time.Second }},
	}

	require.NoError(t, NewConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), errors.ErrInvalidConfig)
		})
	}
}

func TestWorkerCount_DefaultsToCPUs(t *testing.T) {
	cfg := NewConfig()
	assert.Positive(t, cfg.WorkerCount())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), "debug should be disabled at warn")
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel), "warn should be enabled")

	_, err = NewLogger("chatty")
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
}
