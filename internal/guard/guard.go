// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

// Package guard decides, per navigation, whether the current session may
// open a protected page.
//
// The decision runs as a small state machine: every evaluation starts in
// Validating, then lands on exactly one of Authorized, RedirectLogin, or
// RedirectFallback. RedirectFallback sends an authenticated non-admin
// away from admin pages, to the dashboard.
package guard

import (
	"context"

	"github.com/busdesk/busdesk/internal/logging"
)

// Decision is the outcome of one guard evaluation.
type Decision int

const (
	// Authorized renders the requested page.
	Authorized Decision = iota

	// RedirectLogin sends the visitor to the login page.
	RedirectLogin

	// RedirectFallback sends an authenticated user without the required
	// role to the dashboard.
	RedirectFallback
)

// String returns the decision name for logging.
func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case RedirectLogin:
		return "redirect-login"
	case RedirectFallback:
		return "redirect-fallback"
	default:
		return "unknown"
	}
}

// Requirement describes what a page demands of the session.
type Requirement struct {
	// Auth requires a logged-in session.
	Auth bool

	// Admin additionally requires the admin role. Implies Auth.
	Admin bool
}

// Session is the view of the session store the guard needs.
type Session interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Validator asks the backend whether the current token is still
// accepted. Implemented by the gateway client.
type Validator interface {
	ValidateToken(ctx context.Context) (bool, error)
}

// Guard gates navigation to protected pages.
type Guard struct {
	session   Session
	validator Validator
}

// New creates a guard over the given session. The validator may be nil,
// in which case the token presence check alone decides.
func New(session Session, validator Validator) *Guard {
	return &Guard{session: session, validator: validator}
}

// Evaluate runs one guard pass for a page with the given requirement.
//
// When a validator is configured, the token is checked against the
// backend first. A 401/403 there clears the session through the gateway
// client's interceptor before Evaluate inspects it, so a dead token
// resolves to RedirectLogin. Any other validation failure (backend down,
// timeout) is logged and deliberately ignored: the session stays usable
// and the page renders, leaving later API calls to surface the problem.
func (g *Guard) Evaluate(ctx context.Context, req Requirement) Decision {
	if !req.Auth && !req.Admin {
		return Authorized
	}

	if g.session.IsAuthenticated() && g.validator != nil {
		switch valid, err := g.validator.ValidateToken(ctx); {
		case err != nil:
			logging.Warn().Err(err).Msg("token validation failed, continuing on stored session")
		case !valid:
			// Deliberate passthrough: a negative verdict without a 401
			// is logged, not enforced. The interceptor handles real
			// rejections by clearing the session.
			logging.Warn().Msg("backend reports token invalid, continuing on stored session")
		}
	}

	if !g.session.IsAuthenticated() {
		return RedirectLogin
	}

	if req.Admin && !g.session.IsAdmin() {
		return RedirectFallback
	}

	return Authorized
}
