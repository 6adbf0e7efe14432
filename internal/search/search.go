// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

// Package search implements trip search and the client-side result
// filters. A search fetches once from the backend; every filter change
// is a pure post-filter over that fetched set and never re-queries.
//
// When the backend is unreachable the search falls back to a built-in
// sample timetable so the rest of the flow stays demonstrable. Results
// carry their origin so the UI can mark degraded data.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/busdesk/busdesk/internal/models"
)

// Source tells where a result set came from.
type Source string

const (
	// SourceLive marks results fetched from the backend.
	SourceLive Source = "live"

	// SourceSample marks built-in fallback data shown because the
	// backend could not be reached. The UI must make this visible.
	SourceSample Source = "sample"
)

// Query is one trip search request.
type Query struct {
	Source      string
	Destination string
	Date        string // YYYY-MM-DD
}

// Validate checks the query before any request is issued. A failing
// query never reaches the backend.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Source) == "" {
		return fmt.Errorf("source is required")
	}
	if strings.TrimSpace(q.Destination) == "" {
		return fmt.Errorf("destination is required")
	}
	if strings.TrimSpace(q.Date) == "" {
		return fmt.Errorf("travel date is required")
	}
	if strings.EqualFold(strings.TrimSpace(q.Source), strings.TrimSpace(q.Destination)) {
		return fmt.Errorf("source and destination must differ")
	}
	if _, err := time.Parse("2006-01-02", q.Date); err != nil {
		return fmt.Errorf("travel date must be YYYY-MM-DD")
	}
	return nil
}

// Result is a search outcome: the fetched trips and where they came from.
type Result struct {
	Trips  []models.Trip
	Origin Source
}

// Degraded reports whether the result shows sample data.
func (r Result) Degraded() bool {
	return r.Origin == SourceSample
}
