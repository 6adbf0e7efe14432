// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

// Package api implements the gateway client for the reservation backend's
// REST API.
//
// Client Features:
//   - HTTP client with configurable timeout
//   - Bearer token authentication sourced from the session store
//   - 401/403 interceptor: clears the stored session and fires the
//     unauthorized hook exactly once per failing request, before the
//     caller sees the error
//   - Circuit breaker protection for backend outages
//   - Client-side request rate limiting
//   - Typed error decoding of backend error bodies
//
// Related Files:
//   - client.go: core Client struct and request plumbing
//   - errors.go: typed API errors
//   - auth.go, buses.go, routes.go, trips.go, bookings.go, payments.go:
//     endpoint methods grouped by resource
package api
