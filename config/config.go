// Package config holds the application configuration for the ontology CLI
// and any embedder of the storage layer.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/thdiaman/OntologyAPI/errors"
)

// MetricsConfig controls the optional Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr,omitempty"` // e.g. ":9090"
}

// Config is the complete application configuration.
type Config struct {
	// Path is the ontology file loaded at open and rewritten at close.
	Path string `json:"path"`

	// Namespace is the base URI qualifying every identifier in the file.
	Namespace string `json:"namespace"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	Metrics MetricsConfig `json:"metrics,omitempty"`
}

// DefaultConfig returns a configuration with defaults applied. Path and
// Namespace have no defaults and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Metrics:  MetricsConfig{Enabled: false, Addr: ":9090"},
	}
}

// Validate checks the configuration for completeness and consistency.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("path is required: %w", errors.ErrInvalidConfig)
	}
	if c.Namespace == "" {
		return fmt.Errorf("namespace is required: %w", errors.ErrInvalidConfig)
	}
	if u, err := url.Parse(c.Namespace); err != nil || u.Scheme == "" {
		return fmt.Errorf("namespace %q is not an absolute URI: %w",
			c.Namespace, errors.ErrInvalidConfig)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics enabled without addr: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// SlogLevel maps LogLevel to its slog.Level. An empty level means info.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q: %w", c.LogLevel, errors.ErrInvalidConfig)
	}
}

// LoadFile reads a JSON configuration file, applies defaults for omitted
// fields, and validates the result.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.WrapIO(err, "config", "LoadFile", "read")
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config.LoadFile: parse failed: %w: %w",
			errors.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
