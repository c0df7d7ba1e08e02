// Package config holds the storefront's runtime configuration, sourced from
// environment variables.
package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Backend
	BackendURL     string        `env:"BACKEND_URL" envDefault:"http://localhost:8000"`
	BackendAPIKey  string        `env:"BACKEND_API_KEY" envDefault:""`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`

	// Durable client state: "file" or "redis".
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	StorageDir     string `env:"STORAGE_DIR" envDefault:".storefront"`

	// Redis (used when STORAGE_BACKEND=redis)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// State TTL in hours for the redis backend (default: 30 days).
	StateTTL int `env:"STATE_TTL_HOURS" envDefault:"720"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	switch c.StorageBackend {
	case "file", "redis":
	default:
		return fmt.Errorf("invalid storage backend: %s", c.StorageBackend)
	}
	if c.StorageBackend == "file" && c.StorageDir == "" {
		return fmt.Errorf("STORAGE_DIR is required for the file backend")
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("invalid backend timeout: %s", c.BackendTimeout)
	}
	return nil
}
