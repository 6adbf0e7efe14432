// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

// Package config loads and validates Busdesk configuration.
//
// Configuration is layered with Koanf v2: built-in defaults, then an optional
// YAML config file, then environment variables (highest priority).
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the root configuration for the Busdesk client.
type Config struct {
	API     APIConfig     `koanf:"api"`
	State   StateConfig   `koanf:"state"`
	Logging LoggingConfig `koanf:"logging"`
}

// APIConfig configures the connection to the reservation backend.
type APIConfig struct {
	// BaseURL is the backend base URL including the /api/v1 prefix.
	BaseURL string `koanf:"base_url"`

	// Timeout bounds every request. A backend that never responds must not
	// leave the UI in a perpetual loading state.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the client-side request budget in requests per second.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the burst size for the rate limiter.
	RateBurst int `koanf:"rate_burst"`

	// BreakerEnabled wraps backend calls in a circuit breaker so a dead
	// backend fails fast instead of timing out on every page.
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// StateConfig configures durable local state (session store, logs, tickets).
type StateConfig struct {
	// Dir is the directory for the local key-value store and log file.
	Dir string `koanf:"dir"`

	// TicketDir is where rendered ticket PDFs are written.
	TicketDir string `koanf:"ticket_dir"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// LogFile returns the log file path inside the state directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.State.Dir, "busdesk.log")
}

// SessionDir returns the BadgerDB directory inside the state directory.
func (c *Config) SessionDir() string {
	return filepath.Join(c.State.Dir, "session")
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", u.Scheme)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative, got %f", c.API.RateLimit)
	}
	if c.State.Dir == "" {
		return fmt.Errorf("state.dir is required")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// defaultStateDir places local state under the user's home directory,
// falling back to the working directory when home cannot be resolved.
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".busdesk"
	}
	return filepath.Join(home, ".local", "share", "busdesk")
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	stateDir := defaultStateDir()
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8080/api/v1",
			Timeout:        30 * time.Second,
			RateLimit:      10,
			RateBurst:      5,
			BreakerEnabled: true,
		},
		State: StateConfig{
			Dir:       stateDir,
			TicketDir: filepath.Join(stateDir, "tickets"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
