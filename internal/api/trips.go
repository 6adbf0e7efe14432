// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/busdesk/busdesk/internal/models"
)

// ListTrips returns all scheduled trips.
func (c *Client) ListTrips(ctx context.Context) ([]models.Trip, error) {
	var trips []models.Trip
	if err := c.do(ctx, http.MethodGet, "/trips", nil, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// SearchTrips queries trips by source, destination, and travel date
// (formatted as YYYY-MM-DD).
func (c *Client) SearchTrips(ctx context.Context, source, destination, date string) ([]models.Trip, error) {
	params := url.Values{}
	params.Set("source", source)
	params.Set("destination", destination)
	params.Set("date", date)

	var trips []models.Trip
	if err := c.do(ctx, http.MethodGet, "/trips/search?"+params.Encode(), nil, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// GetTrip fetches a single trip by id.
func (c *Client) GetTrip(ctx context.Context, id int64) (*models.Trip, error) {
	var trip models.Trip
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/trips/%d", id), nil, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// GetTripSeats fetches the seat map snapshot for a trip. The snapshot is
// not live; seats booked after the fetch surface as booking conflicts.
func (c *Client) GetTripSeats(ctx context.Context, id int64) ([]models.Seat, error) {
	var seats []models.Seat
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/trips/%d/seats", id), nil, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// CreateTrip schedules a new trip. Admin only.
func (c *Client) CreateTrip(ctx context.Context, trip models.TripUpsert) (*models.Trip, error) {
	var created models.Trip
	if err := c.do(ctx, http.MethodPost, "/trips", trip, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTrip replaces an existing trip. Admin only.
func (c *Client) UpdateTrip(ctx context.Context, id int64, trip models.TripUpsert) (*models.Trip, error) {
	var updated models.Trip
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/trips/%d", id), trip, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTrip removes a trip. Admin only.
func (c *Client) DeleteTrip(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/trips/%d", id), nil, nil)
}
