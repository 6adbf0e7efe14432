// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package search

import (
	"time"

	"github.com/busdesk/busdesk/internal/models"
)

// sampleRides is the built-in fallback timetable. Five buses spanning
// all bus types and departure buckets, so filters stay exercisable
// while the backend is down.
var sampleRides = []struct {
	busNumber string
	busType   string
	operator  string
	seats     int
	hour      int
	minute    int
	fare      float64
}{
	{"SMP-101", models.BusTypeAC, "City Express", 40, 7, 0, 25},
	{"SMP-102", models.BusTypeNonAC, "Travel Safe", 45, 10, 30, 18},
	{"SMP-103", models.BusTypeACSleeper, "Luxury Lines", 30, 14, 0, 55},
	{"SMP-104", models.BusTypeNonAC, "Comfort Travel", 45, 19, 30, 20},
	{"SMP-105", models.BusTypeAC, "Express Bus", 40, 23, 0, 35},
}

// sampleRideDuration is the uniform journey length of the fallback trips.
const sampleRideDuration = 4*time.Hour + 30*time.Minute

// SampleBookings builds the fallback bookings the dashboard shows when
// the backend is unreachable: one upcoming, one completed. Negative ids
// mark them as local, like sample trips.
func SampleBookings(now time.Time) []models.Booking {
	upcoming := sampleTripAt(0, now.AddDate(0, 0, 1))
	finished := sampleTripAt(2, now.AddDate(0, 0, -7))

	return []models.Booking{
		{
			ID:          -1,
			Status:      models.BookingStatusConfirmed,
			TotalAmount: 2 * upcoming.Fare,
			Seats: []models.Seat{
				{ID: -1, SeatNumber: "A1"},
				{ID: -2, SeatNumber: "A2"},
			},
			Trip:        upcoming,
			BookingTime: now.AddDate(0, 0, -2),
		},
		{
			ID:          -2,
			Status:      models.BookingStatusCompleted,
			TotalAmount: finished.Fare,
			Seats: []models.Seat{
				{ID: -3, SeatNumber: "C4"},
			},
			Trip:        finished,
			BookingTime: now.AddDate(0, 0, -10),
		},
	}
}

// sampleTripAt builds one timetable entry on the given day.
func sampleTripAt(i int, day time.Time) models.Trip {
	ride := sampleRides[i]
	departure := time.Date(day.Year(), day.Month(), day.Day(), ride.hour, ride.minute, 0, 0, time.Local)
	return models.Trip{
		ID: int64(-(i + 1)),
		Route: models.Route{
			Source:      "Pune",
			Destination: "Mumbai",
		},
		Bus: models.Bus{
			BusNumber:    ride.busNumber,
			BusType:      ride.busType,
			OperatorName: ride.operator,
			TotalSeats:   ride.seats,
		},
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(sampleRideDuration),
		Fare:           ride.fare,
		AvailableSeats: ride.seats,
	}
}

// SampleTrips builds the fallback result set for a query. Output is
// deterministic for a given query so re-renders are stable. The date is
// expected pre-validated; an unparseable one falls back to today.
func SampleTrips(q Query) []models.Trip {
	day, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		now := time.Now()
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	}

	trips := make([]models.Trip, 0, len(sampleRides))
	for i, ride := range sampleRides {
		departure := time.Date(day.Year(), day.Month(), day.Day(), ride.hour, ride.minute, 0, 0, time.Local)
		trips = append(trips, models.Trip{
			ID: int64(-(i + 1)), // negative ids cannot collide with backend records
			Route: models.Route{
				Source:      q.Source,
				Destination: q.Destination,
			},
			Bus: models.Bus{
				BusNumber:    ride.busNumber,
				BusType:      ride.busType,
				OperatorName: ride.operator,
				TotalSeats:   ride.seats,
			},
			DepartureTime:  departure,
			ArrivalTime:    departure.Add(sampleRideDuration),
			Fare:           ride.fare,
			AvailableSeats: ride.seats,
		})
	}
	return trips
}
