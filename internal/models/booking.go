// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package models

import "time"

// Booking status constants as the backend reports them.
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusPending   = "PENDING"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

// Booking is a backend-assigned reservation of one or more seats on a trip.
// The client never mutates a booking except by cancelling it.
type Booking struct {
	ID          int64     `json:"id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
	Seats       []Seat    `json:"seats"`
	Trip        Trip      `json:"trip"`
	Payment     *Payment  `json:"payment,omitempty"`
	BookingTime time.Time `json:"bookingTime"`
}

// IsUpcoming reports whether the booking still lies ahead: it is
// confirmed or pending and the trip has not yet departed. Only upcoming
// bookings offer a cancel action; past-departure cancellation is the
// backend's responsibility to reject.
func (b *Booking) IsUpcoming(now time.Time) bool {
	if b.Status != BookingStatusConfirmed && b.Status != BookingStatusPending {
		return false
	}
	return b.Trip.DepartureTime.After(now)
}

// Passenger holds the details collected for one selected seat.
type Passenger struct {
	Name   string `json:"name" validate:"required"`
	Age    int    `json:"age" validate:"min=1,max=100"`
	Gender string `json:"gender,omitempty"`
}

// CreateBookingRequest is the payload for POST /bookings.
type CreateBookingRequest struct {
	TripID        int64         `json:"tripId"`
	SeatIDs       []int64       `json:"seatIds"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}
