// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/busdesk/busdesk/internal/api"
	"github.com/busdesk/busdesk/internal/config"
	"github.com/busdesk/busdesk/internal/session"
)

// Run wires the gateway client to the session store, starts the event
// loop, and blocks until the user quits.
//
// The unauthorized hook injects its message through Program.Send, which
// serializes onto the event loop. That gives the ordering guarantee the
// client depends on: the session is cleared and the forced navigation
// queued before any page-level handler can react to the failed request.
func Run(cfg *config.Config, store *session.Store) error {
	var program *tea.Program

	client := api.NewClient(api.Options{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		RateLimit:      cfg.API.RateLimit,
		RateBurst:      cfg.API.RateBurst,
		BreakerEnabled: cfg.API.BreakerEnabled,
		Tokens:         store,
		OnUnauthorized: func() {
			if program != nil {
				program.Send(unauthorizedMsg{})
			}
		},
	})

	app := NewApp(cfg, client, store)
	program = tea.NewProgram(app, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}
