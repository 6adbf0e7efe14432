// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package tui

import (
	"github.com/busdesk/busdesk/internal/guard"
	"github.com/busdesk/busdesk/internal/models"
	"github.com/busdesk/busdesk/internal/search"
)

// navigateMsg asks the app to open a page. The payload carries
// page-specific context, e.g. the trip for the booking wizard.
type navigateMsg struct {
	page    Page
	payload interface{}
}

// navReadyMsg delivers the guard's decision for a pending navigation.
type navReadyMsg struct {
	page     Page
	payload  interface{}
	decision guard.Decision
}

// unauthorizedMsg is injected from the gateway client's 401/403 hook,
// outside the normal Update flow, to force the login page.
type unauthorizedMsg struct{}

// authResultMsg completes a login or register call.
type authResultMsg struct {
	resp *models.AuthResponse
	err  error
}

// searchResultMsg completes a trip search, possibly with sample data.
type searchResultMsg struct {
	result search.Result
	err    error
}

// seatsLoadedMsg completes the seat snapshot fetch that starts a
// booking workflow.
type seatsLoadedMsg struct {
	trip  models.Trip
	seats []models.Seat
	err   error
}

// bookingSubmittedMsg completes the single booking-creation request.
type bookingSubmittedMsg struct {
	booking *models.Booking
	err     error
}

// bookingsLoadedMsg completes the dashboard's bookings fetch.
type bookingsLoadedMsg struct {
	bookings []models.Booking
	err      error
}

// bookingDetailMsg completes a single booking fetch.
type bookingDetailMsg struct {
	booking *models.Booking
	err     error
}

// cancelResultMsg completes a booking cancellation.
type cancelResultMsg struct {
	id  int64
	err error
}

// paymentsLoadedMsg completes the dashboard's payments fetch.
type paymentsLoadedMsg struct {
	payments []models.Payment
	err      error
}

// ticketSavedMsg completes a PDF ticket export.
type ticketSavedMsg struct {
	path string
	err  error
}

// adminDataMsg delivers one resource list for the admin console.
type adminDataMsg struct {
	buses    []models.Bus
	routes   []models.Route
	trips    []models.Trip
	payments []models.Payment
	err      error
}

// adminSavedMsg completes an admin create, update, or delete.
type adminSavedMsg struct {
	err error
}
