// Package config provides environment-derived configuration for notedeck.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "NOTEDECK_"

// Config holds the process configuration, read once at startup.
type Config struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Environment     string        `koanf:"environment"`
	LogLevel        string        `koanf:"log_level"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Load reads configuration from the environment over hardcoded defaults.
//
// Environment variables are prefixed and use underscore separators:
//
//	NOTEDECK_PORT             -> port
//	NOTEDECK_LOG_LEVEL        -> log_level
//	NOTEDECK_SHUTDOWN_TIMEOUT -> shutdown_timeout
func Load() (*Config, error) {
	cfg := &Config{
		Host:            "0.0.0.0",
		Port:            8080,
		Environment:     "development",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for obviously bad values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range (1-65535)", c.Port)
	}
	switch c.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("unknown environment %q, must be development, production or test", c.Environment)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
