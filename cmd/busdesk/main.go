// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

// Package main is the entry point for the Busdesk terminal client.
//
// Busdesk is a terminal UI for a bus ticket reservation backend: trip
// search with filters, a four-step booking workflow, a dashboard for
// bookings and payments, and an admin console for buses, routes, and
// trips.
//
// # Application Architecture
//
// The client initializes components in the following order:
//
//  1. Configuration: defaults, optional YAML file, environment (Koanf v2)
//  2. Logging: zerolog writing to a file under the state directory,
//     so log lines never corrupt the terminal UI
//  3. Session store: BadgerDB holding the bearer token and user profile
//     across restarts; expired tokens are discarded on restore
//  4. Gateway client: rate-limited, circuit-broken HTTP client that
//     attaches the bearer token and intercepts 401/403 responses
//  5. UI: the bubbletea program
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (BUSDESK_API_URL, BUSDESK_STATE_DIR, ...)
//   - Config file (BUSDESK_CONFIG or the default search paths)
//   - Built-in defaults
//
// The default backend is http://localhost:8080/api/v1.
package main

import (
	"errors"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/busdesk/busdesk/internal/config"
	"github.com/busdesk/busdesk/internal/logging"
	"github.com/busdesk/busdesk/internal/session"
	"github.com/busdesk/busdesk/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "busdesk:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if err := os.MkdirAll(cfg.State.Dir, 0o750); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	// Log to a file: stdout and stderr belong to the terminal UI.
	closer, err := logging.InitFile(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	}, cfg.LogFile())
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer closer.Close()

	logging.Info().
		Str("base_url", cfg.API.BaseURL).
		Str("state_dir", cfg.State.Dir).
		Msg("Starting Busdesk")

	db, err := badger.Open(badger.DefaultOptions(cfg.SessionDir()).WithLogger(nil))
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()

	store := session.NewStore(db)
	switch err := store.Restore(); {
	case err == nil:
		if u := store.Current(); u != nil {
			logging.Info().Str("user", u.Name).Str("role", u.Role).Msg("Session restored")
		}
	case errors.Is(err, session.ErrNoSession):
		logging.Debug().Msg("No stored session")
	default:
		// A corrupt session is not fatal, the user can sign in again.
		logging.Warn().Err(err).Msg("Could not restore session")
	}

	return tui.Run(cfg, store)
}
