// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/awiesler/tutorium/internal/engine"
	"github.com/awiesler/tutorium/internal/logging"
)

// Config is the full application configuration.
type Config struct {
	// Server configures the HTTP API.
	Server ServerConfig `json:"server" koanf:"server"`

	// Store configures the persistence backend.
	Store StoreConfig `json:"store" koanf:"store"`

	// Logging configures the zerolog logger.
	Logging logging.Config `json:"logging" koanf:"logging"`

	// Engine contains all personalization engine parameters.
	Engine engine.Config `json:"engine" koanf:"engine"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0.
	Host string `json:"host" koanf:"host"`

	// Port is the listen port. Default: 8080.
	Port int `json:"port" koanf:"port"`

	// ReadTimeout bounds request reading. Default: 15s.
	ReadTimeout time.Duration `json:"read_timeout" koanf:"read_timeout"`

	// WriteTimeout bounds response writing. Default: 30s.
	WriteTimeout time.Duration `json:"write_timeout" koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown. Default: 15s.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" koanf:"shutdown_timeout"`

	// RateLimitRequests is the per-client request budget per window.
	// Zero disables rate limiting. Default: 100.
	RateLimitRequests int `json:"rate_limit_requests" koanf:"rate_limit_requests"`

	// RateLimitWindow is the rate limit window. Default: 1m.
	RateLimitWindow time.Duration `json:"rate_limit_window" koanf:"rate_limit_window"`

	// CORSOrigins lists allowed CORS origins. Default: ["*"].
	CORSOrigins []string `json:"cors_origins" koanf:"cors_origins"`
}

// StoreConfig configures the persistence backend.
type StoreConfig struct {
	// Backend selects the store implementation: memory or badger.
	// Default: memory.
	Backend string `json:"backend" koanf:"backend"`

	// Path is the on-disk location for the badger backend.
	// Default: /data/tutorium.
	Path string `json:"path" koanf:"path"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns a Config with all default values applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   15 * time.Second,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
		Store: StoreConfig{
			Backend: "memory",
			Path:    "/data/tutorium",
		},
		Logging: logging.DefaultConfig(),
		Engine:  *engine.DefaultConfig(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Server.RateLimitRequests < 0 {
		return fmt.Errorf("server.rate_limit_requests must be non-negative, got %d", c.Server.RateLimitRequests)
	}
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when rate limiting is enabled")
	}

	switch c.Store.Backend {
	case "memory":
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the badger backend")
		}
	default:
		return fmt.Errorf("store.backend must be memory or badger, got %q", c.Store.Backend)
	}

	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	return nil
}

// parseList splits a comma-separated value into trimmed entries,
// dropping empties. Environment variables carry lists this way.
func parseList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
