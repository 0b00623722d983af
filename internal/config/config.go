// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	DBPath   string `env:"DB_PATH" envDefault:"./data/ledger.db"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// JWTSecret enables bearer-token auth on the API when set. Left empty
	// (local development), the API is open.
	JWTSecret string `env:"JWT_SECRET"`

	// SelfName is the display name that identifies the current user in
	// group member lists.
	SelfName string `env:"SELF_NAME" envDefault:"You"`

	// Currency is the default currency code for new groups.
	Currency string `env:"CURRENCY" envDefault:"USD"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if c.SelfName == "" {
		return fmt.Errorf("SELF_NAME must not be empty")
	}
	return nil
}
