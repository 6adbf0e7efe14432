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

// CreateBooking submits one atomic booking request for the selected
// seats. A seat claimed by another user since the seat map was fetched
// comes back as a backend error, not a partial booking.
func (c *Client) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// MyBookings returns the authenticated user's bookings.
func (c *Client) MyBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/me", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBooking fetches a single booking by id.
func (c *Client) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookings/%d", id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking cancels a booking. The client only offers this for
// upcoming bookings; rejecting a past-departure cancel is the backend's
// responsibility.
func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil, nil)
}
