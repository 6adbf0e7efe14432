// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/busdesk/busdesk/internal/models"
)

// ListRoutes returns all routes known to the backend.
func (c *Client) ListRoutes(ctx context.Context) ([]models.Route, error) {
	var routes []models.Route
	if err := c.do(ctx, http.MethodGet, "/routes", nil, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// CreateRoute registers a new route. Admin only.
func (c *Client) CreateRoute(ctx context.Context, route models.Route) (*models.Route, error) {
	var created models.Route
	if err := c.do(ctx, http.MethodPost, "/routes", route, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateRoute replaces an existing route record. Admin only.
func (c *Client) UpdateRoute(ctx context.Context, id int64, route models.Route) (*models.Route, error) {
	var updated models.Route
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/routes/%d", id), route, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteRoute removes a route. Admin only.
func (c *Client) DeleteRoute(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/routes/%d", id), nil, nil)
}
