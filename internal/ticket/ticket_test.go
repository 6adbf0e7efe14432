// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package ticket

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/busdesk/busdesk/internal/models"
)

func confirmedBooking() *models.Booking {
	departure := time.Date(2026, 4, 1, 7, 0, 0, 0, time.UTC)
	return &models.Booking{
		ID:          42,
		Status:      models.BookingStatusConfirmed,
		TotalAmount: 200,
		Seats: []models.Seat{
			{ID: 10, SeatNumber: "A1"},
			{ID: 11, SeatNumber: "A2"},
		},
		Trip: models.Trip{
			ID: 3,
			Route: models.Route{
				Source:      "Pune",
				Destination: "Mumbai",
			},
			Bus: models.Bus{
				BusNumber:    "MH-12-1234",
				BusType:      models.BusTypeAC,
				OperatorName: "City Express",
			},
			DepartureTime: departure,
			ArrivalTime:   departure.Add(4 * time.Hour),
			Fare:          100,
		},
		Payment: &models.Payment{
			Method: models.PaymentMethodUPI,
			Status: models.PaymentStatusSuccess,
		},
	}
}

func TestRender(t *testing.T) {
	data, filename, err := Render(confirmedBooking())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
	if filename != "TICKET_42_Pune_Mumbai.pdf" {
		t.Errorf("filename = %q", filename)
	}
}

func TestRender_NoPayment(t *testing.T) {
	b := confirmedBooking()
	b.Payment = nil
	if _, _, err := Render(b); err != nil {
		t.Fatalf("Render() without payment error = %v", err)
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tickets")

	path, err := Save(dir, confirmedBooking())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved ticket: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("saved file is not a PDF")
	}
}

func TestSafeFilenamePart(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pune Mumbai", "Pune_Mumbai"},
		{"a/b\\c:d", "a_b_c_d"},
		{"  ", "NA"},
	}

	for _, tt := range tests {
		if got := safeFilenamePart(tt.in); got != tt.want {
			t.Errorf("safeFilenamePart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
