// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package api

import (
	"context"
	"net/http"

	"github.com/busdesk/busdesk/internal/models"
)

// Login authenticates with email and password and returns the token and
// identity on success. Invalid credentials surface as a backend error.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account and returns the token and identity,
// so registration doubles as login.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// validateRequest is the payload for POST /auth/validate.
type validateRequest struct {
	Token string `json:"token"`
}

// ValidateToken asks the backend whether the current token is still
// accepted. The response body is a bare boolean. A 401/403 here has
// already cleared the session by the time this returns.
func (c *Client) ValidateToken(ctx context.Context) (bool, error) {
	req := validateRequest{Token: c.tokens.Token()}
	var valid bool
	if err := c.do(ctx, http.MethodPost, "/auth/validate", req, &valid); err != nil {
		return false, err
	}
	return valid, nil
}
