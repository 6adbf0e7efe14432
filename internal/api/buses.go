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

// ListBuses returns all buses known to the backend.
func (c *Client) ListBuses(ctx context.Context) ([]models.Bus, error) {
	var buses []models.Bus
	if err := c.do(ctx, http.MethodGet, "/buses", nil, &buses); err != nil {
		return nil, err
	}
	return buses, nil
}

// CreateBus registers a new bus. Admin only.
func (c *Client) CreateBus(ctx context.Context, bus models.Bus) (*models.Bus, error) {
	var created models.Bus
	if err := c.do(ctx, http.MethodPost, "/buses", bus, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBus replaces an existing bus record. Admin only.
func (c *Client) UpdateBus(ctx context.Context, id int64, bus models.Bus) (*models.Bus, error) {
	var updated models.Bus
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/buses/%d", id), bus, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBus removes a bus. Admin only.
func (c *Client) DeleteBus(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/buses/%d", id), nil, nil)
}
