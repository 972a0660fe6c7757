// Package config holds the service and CLI configuration for pgnview.
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/gametree"
)

// Config holds all program configuration.
type Config struct {
	LogLevel string  `yaml:"log-level" env:"PGNVIEW_LOG_LEVEL" env-default:"info"`
	HTTP     HTTP    `yaml:"http"`
	Redis    Redis   `yaml:"redis"`
	Library  Library `yaml:"library"`
	Parse    Parse   `yaml:"parse"`
}

// HTTP configures the replay API listener.
type HTTP struct {
	Addr         string        `yaml:"addr" env:"PGNVIEW_HTTP_ADDR" env-default:":8080"`
	ReadTimeout  time.Duration `yaml:"read-timeout" env:"PGNVIEW_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write-timeout" env:"PGNVIEW_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// Redis configures the rendered-tree cache. The cache is off unless Enabled.
type Redis struct {
	Enabled  bool          `yaml:"enabled" env:"PGNVIEW_REDIS_ENABLED" env-default:"false"`
	Addr     string        `yaml:"addr" env:"PGNVIEW_REDIS_ADDR" env-default:"localhost:6379"`
	Password string        `yaml:"password" env:"PGNVIEW_REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"PGNVIEW_REDIS_DB" env-default:"0"`
	TTL      time.Duration `yaml:"ttl" env:"PGNVIEW_REDIS_TTL" env-default:"1h"`
}

// Library points at the games document served by the API.
type Library struct {
	Path    string `yaml:"path" env:"PGNVIEW_LIBRARY_PATH"`
	Workers int    `yaml:"workers" env:"PGNVIEW_LIBRARY_WORKERS" env-default:"0"` // 0 = one per CPU
}

// Parse selects how move text is resolved and rendered.
type Parse struct {
	Disambiguation string `yaml:"disambiguation" env:"PGNVIEW_DISAMBIGUATION" env-default:"first-match"`
	Unresolved     string `yaml:"unresolved" env:"PGNVIEW_UNRESOLVED" env-default:"corner"`
	LineLength     int    `yaml:"line-length" env:"PGNVIEW_LINE_LENGTH" env-default:"80"`
	MaxNodes       int    `yaml:"max-nodes" env:"PGNVIEW_MAX_NODES" env-default:"10000"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		HTTP: HTTP{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Redis: Redis{
			Addr: "localhost:6379",
			TTL:  time.Hour,
		},
		Parse: Parse{
			Disambiguation: "first-match",
			Unresolved:     "corner",
			LineLength:     80,
			MaxNodes:       gametree.DefaultMaxNodes,
		},
	}
}

// Load reads configuration from a YAML file with environment overrides.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the program cannot act on.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "log-level %q", c.LogLevel)
	}
	if _, err := c.ParseOptions(); err != nil {
		return err
	}
	if c.Parse.LineLength < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "line-length %d", c.Parse.LineLength)
	}
	if c.Parse.MaxNodes < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "max-nodes %d", c.Parse.MaxNodes)
	}
	if c.Library.Workers < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "library workers %d", c.Library.Workers)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "redis enabled without addr")
	}
	if c.Redis.TTL < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "redis ttl %s", c.Redis.TTL)
	}
	return nil
}

// ParseOptions converts the parse section into tree builder options.
func (c *Config) ParseOptions() (gametree.Options, error) {
	d, err := engine.ParseDisambiguation(c.Parse.Disambiguation)
	if err != nil {
		return gametree.Options{}, err
	}
	u, err := engine.ParseUnresolvedPolicy(c.Parse.Unresolved)
	if err != nil {
		return gametree.Options{}, err
	}
	return gametree.Options{Disambiguation: d, Unresolved: u, MaxNodes: c.Parse.MaxNodes}, nil
}

// WorkerCount returns the number of library build workers.
func (c *Config) WorkerCount() int {
	if c.Library.Workers > 0 {
		return c.Library.Workers
	}
	return runtime.NumCPU()
}
