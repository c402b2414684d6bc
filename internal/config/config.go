// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// Config holds the dashboard server settings.
type Config struct {
	Port      int    `env:"PORT" envDefault:"10000"`
	Host      string `env:"HDIDASH_HOST" envDefault:"0.0.0.0"`
	DataDir   string `env:"HDIDASH_DATA_DIR" envDefault:"data"`
	Snapshot  string `env:"HDIDASH_SNAPSHOT"`
	LogLevel  string `env:"HDIDASH_LOG_LEVEL" envDefault:"info"`
	CacheSize int    `env:"HDIDASH_CACHE_SIZE" envDefault:"256"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a validated Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that env parsing cannot express.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Snapshot == "" && c.DataDir == "" {
		return fmt.Errorf("either a data directory or a snapshot is required")
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
