// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package models

import "time"

// Bus type constants as the backend reports them.
const (
	BusTypeAC        = "AC"
	BusTypeNonAC     = "Non-AC"
	BusTypeACSleeper = "AC Sleeper"
)

// DefaultFare is the per-seat fare applied when a trip record
// carries no fare of its own.
const DefaultFare = 50.0

// Route is a point-to-point connection served by one or more trips.
type Route struct {
	ID          int64   `json:"id"`
	Source      string  `json:"source" validate:"required"`
	Destination string  `json:"destination" validate:"required,nefield=Source"`
	DistanceKm  float64 `json:"distance"`
	Duration    string  `json:"duration,omitempty"`
}

// Bus is a vehicle operated on routes.
type Bus struct {
	ID           int64  `json:"id"`
	BusNumber    string `json:"busNumber" validate:"required"`
	BusType      string `json:"busType" validate:"required"`
	OperatorName string `json:"operatorName" validate:"required"`
	TotalSeats   int    `json:"totalSeats" validate:"gt=0"`
}

// Trip is a scheduled bus run on a route at a specific time with a fare.
type Trip struct {
	ID             int64     `json:"id"`
	Route          Route     `json:"route"`
	Bus            Bus       `json:"bus"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Fare           float64   `json:"fare"`
	AvailableSeats int       `json:"availableSeats,omitempty"`
}

// EffectiveFare returns the trip's fare, or DefaultFare when the record
// lacks one.
func (t *Trip) EffectiveFare() float64 {
	if t.Fare > 0 {
		return t.Fare
	}
	return DefaultFare
}

// Seat is one seat on a trip. The isBooked flag is a snapshot taken when
// the seat map was fetched; a seat claimed by another user after the
// fetch surfaces as a booking error from the backend, not here.
type Seat struct {
	ID         int64  `json:"id"`
	SeatNumber string `json:"seatNumber"`
	IsBooked   bool   `json:"isBooked"`
}

// TripUpsert is the admin payload for POST/PUT /trips.
type TripUpsert struct {
	RouteID       int64     `json:"routeId" validate:"required"`
	BusID         int64     `json:"busId" validate:"required"`
	DepartureTime time.Time `json:"departureTime" validate:"required"`
	ArrivalTime   time.Time `json:"arrivalTime" validate:"required"`
	Fare          float64   `json:"fare" validate:"gte=0"`
}
