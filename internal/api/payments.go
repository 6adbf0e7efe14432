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

// MyPayments returns the authenticated user's payment records.
func (c *Client) MyPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.do(ctx, http.MethodGet, "/payments/me", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// CreatePayment records a payment against a booking.
func (c *Client) CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := c.do(ctx, http.MethodPost, "/payments", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// AllPayments returns every payment record. Admin only.
func (c *Client) AllPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.do(ctx, http.MethodGet, "/payments/all", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
