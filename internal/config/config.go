// Package config provides environment-driven configuration for the server,
// password hashing, and JWT tokens.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the server configuration.
type Config struct {
	Port        int
	DatabaseURL string
}

// Load builds the server configuration from environment variables.
// PORT defaults to 8080; DATABASE_URL is required.
func Load() (*Config, error) {
	cfg := &Config{Port: 8080}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", cfg.Port)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	return cfg, nil
}
