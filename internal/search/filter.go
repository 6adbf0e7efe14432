// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package search

import (
	"strings"
	"time"

	"github.com/busdesk/busdesk/internal/models"
)

// Departure-time buckets by the trip's stated departure hour.
const (
	BucketMorning   = "morning"   // [06:00, 12:00)
	BucketAfternoon = "afternoon" // [12:00, 18:00)
	BucketEvening   = "evening"   // [18:00, 24:00)
	BucketNight     = "night"     // [00:00, 06:00)
)

// BucketForHour maps an hour of day to its departure bucket.
func BucketForHour(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return BucketMorning
	case hour >= 12 && hour < 18:
		return BucketAfternoon
	case hour >= 18:
		return BucketEvening
	default:
		return BucketNight
	}
}

// BucketOf returns the departure bucket for a trip time.
func BucketOf(t time.Time) string {
	return BucketForHour(t.Hour())
}

// Filter narrows a fetched trip set. Zero-valued fields are inactive;
// an active field must match for a trip to pass.
type Filter struct {
	// BusType matches exactly ("AC", "Non-AC", "AC Sleeper").
	BusType string

	// Operator matches as a case-insensitive substring.
	Operator string

	// MinPrice and MaxPrice bound the fare, both inclusive.
	MinPrice *float64
	MaxPrice *float64

	// Departure names a time bucket: morning, afternoon, evening, night.
	Departure string
}

// Active reports whether any predicate is set.
func (f Filter) Active() bool {
	return f.BusType != "" || f.Operator != "" ||
		f.MinPrice != nil || f.MaxPrice != nil || f.Departure != ""
}

// Matches applies every active predicate to one trip.
func (f Filter) Matches(trip models.Trip) bool {
	if f.BusType != "" && trip.Bus.BusType != f.BusType {
		return false
	}
	if f.Operator != "" &&
		!strings.Contains(strings.ToLower(trip.Bus.OperatorName), strings.ToLower(f.Operator)) {
		return false
	}
	fare := trip.EffectiveFare()
	if f.MinPrice != nil && fare < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && fare > *f.MaxPrice {
		return false
	}
	if f.Departure != "" && BucketOf(trip.DepartureTime) != f.Departure {
		return false
	}
	return true
}

// Apply returns the trips passing every active predicate, preserving
// order. The input is never mutated.
func (f Filter) Apply(trips []models.Trip) []models.Trip {
	if !f.Active() {
		out := make([]models.Trip, len(trips))
		copy(out, trips)
		return out
	}

	out := make([]models.Trip, 0, len(trips))
	for _, trip := range trips {
		if f.Matches(trip) {
			out = append(out, trip)
		}
	}
	return out
}
