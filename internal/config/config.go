// Package config loads the automata service configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config is the service configuration. Zero values are replaced by Default.
type Config struct {
	Addr     string `yaml:"addr" json:"addr"`
	LogLevel string `yaml:"log_level" json:"log_level"`

	// DefaultMaxDepth bounds explorations whose request carries no max_depth.
	// Negative means unbounded, which is only allowed when no epsilon loop is
	// reachable from the starting state.
	DefaultMaxDepth  int  `yaml:"default_max_depth" json:"default_max_depth"`
	ProgressInterval int  `yaml:"progress_interval" json:"progress_interval"`
	MaxPaths         int  `yaml:"max_paths" json:"max_paths"`
	MaxInputSize     int  `yaml:"max_input_size" json:"max_input_size"`
	Metrics          bool `yaml:"metrics" json:"metrics"`

	Cache CacheConfig `yaml:"cache" json:"cache"`
	Redis RedisConfig `yaml:"redis" json:"redis"`
}

// CacheConfig bounds the in-memory report cache used when Redis is disabled.
type CacheConfig struct {
	Size int           `yaml:"size" json:"size"`
	TTL  time.Duration `yaml:"ttl" json:"ttl"`
}

// RedisConfig configures the report cache. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:             ":8080",
		LogLevel:         "info",
		DefaultMaxDepth:  -1,
		ProgressInterval: 64,
		Metrics:          true,
		Cache: CacheConfig{
			Size: 1024,
			TTL:  24 * time.Hour,
		},
		Redis: RedisConfig{
			Prefix: "automata:report:",
			TTL:    24 * time.Hour,
		},
	}
}

// Load reads a YAML (or .json) configuration file on top of Default.
// An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return cfg, cfg.Validate()
}

// Validate rejects values that cannot be used.
func (c Config) Validate() error {
	if c.ProgressInterval <= 0 {
		return fmt.Errorf("progress_interval must be positive, got %d", c.ProgressInterval)
	}
	if c.MaxPaths < 0 {
		return fmt.Errorf("max_paths must not be negative, got %d", c.MaxPaths)
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("max_input_size must not be negative, got %d", c.MaxInputSize)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
