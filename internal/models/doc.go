// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

// Package models defines the data structures exchanged with the reservation
// backend: users, routes, buses, trips, seats, bookings, and payments.
//
// All wire types carry camelCase JSON tags matching the backend contract.
// The backend owns every record; the client treats them as read-only
// snapshots except through the admin console's CRUD operations.
package models
