// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

// Package booking implements the four-step booking workflow: seat
// selection, passenger details, payment, confirmation.
//
// The steps form a strict line. Moving forward passes the current
// step's guard or fails with a validation error and no state change;
// moving backward is always allowed and clears nothing. Confirmation is
// terminal: abandoning the workflow discards all local state, nothing
// in-progress is ever persisted.
package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/busdesk/busdesk/internal/logging"
	"github.com/busdesk/busdesk/internal/models"
)

// Step identifies one workflow state, numbered 1-4 as shown to the user.
type Step int

const (
	StepSeatSelection Step = iota + 1
	StepPassengerDetails
	StepPayment
	StepConfirmation
)

// String returns the step title shown in the wizard header.
func (s Step) String() string {
	switch s {
	case StepSeatSelection:
		return "Select Seats"
	case StepPassengerDetails:
		return "Passenger Details"
	case StepPayment:
		return "Payment"
	case StepConfirmation:
		return "Confirmation"
	default:
		return "Unknown"
	}
}

// Workflow errors.
var (
	// ErrNoSeatsSelected blocks SeatSelection -> PassengerDetails.
	ErrNoSeatsSelected = errors.New("please select at least one seat")

	// ErrSubmissionInFlight rejects a duplicate submit while one booking
	// request is already pending.
	ErrSubmissionInFlight = errors.New("booking submission already in progress")

	// ErrWorkflowComplete rejects any mutation after Confirmation.
	ErrWorkflowComplete = errors.New("booking workflow already completed")
)

// Workflow is one in-progress attempt to create a booking, scoped to a
// single trip. It is driven from the UI event loop and holds no locks:
// all access happens on that single goroutine.
type Workflow struct {
	id   uuid.UUID
	trip models.Trip

	// seats is the read-only snapshot fetched at workflow start. There
	// is no live-update subscription; a seat claimed elsewhere after
	// the fetch surfaces as a backend error on submit.
	seats map[int64]models.Seat

	// selected preserves the order seats were picked in.
	selected   []int64
	passengers map[int64]models.Passenger

	payment models.PaymentMethod

	step       Step
	submitting bool
	result     *models.Booking
}

// New starts a workflow for the given trip and seat snapshot.
func New(trip models.Trip, seats []models.Seat) *Workflow {
	seatMap := make(map[int64]models.Seat, len(seats))
	for _, s := range seats {
		seatMap[s.ID] = s
	}
	return &Workflow{
		id:         uuid.New(),
		trip:       trip,
		seats:      seatMap,
		passengers: make(map[int64]models.Passenger),
		payment:    models.PaymentMethod{Type: models.PaymentMethodCard},
		step:       StepSeatSelection,
	}
}

// ID returns the workflow instance id.
func (w *Workflow) ID() uuid.UUID { return w.id }

// Trip returns the trip this workflow books against.
func (w *Workflow) Trip() models.Trip { return w.trip }

// Step returns the current step.
func (w *Workflow) Step() Step { return w.step }

// Submitting reports whether a booking request is in flight.
func (w *Workflow) Submitting() bool { return w.submitting }

// Result returns the created booking once the workflow reaches
// Confirmation, nil before that.
func (w *Workflow) Result() *models.Booking { return w.result }

// Seats returns the seat snapshot in a stable order.
func (w *Workflow) Seats() []models.Seat {
	out := make([]models.Seat, 0, len(w.seats))
	for _, s := range w.seats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Selected returns the selected seat ids in selection order.
func (w *Workflow) Selected() []int64 {
	out := make([]int64, len(w.selected))
	copy(out, w.selected)
	return out
}

// IsSelected reports whether the seat is in the selected set.
func (w *Workflow) IsSelected(seatID int64) bool {
	for _, id := range w.selected {
		if id == seatID {
			return true
		}
	}
	return false
}

// Passenger returns the details entered for a selected seat.
func (w *Workflow) Passenger(seatID int64) (models.Passenger, bool) {
	p, ok := w.passengers[seatID]
	return p, ok
}

// ToggleSeat selects or deselects a seat. Toggling a seat that is
// already booked, or absent from the snapshot, is a silent no-op.
// Passenger entries are kept in sync: selecting a seat creates its
// entry, deselecting removes it, so the entry set always equals the
// selected set.
func (w *Workflow) ToggleSeat(seatID int64) {
	if w.step == StepConfirmation {
		return
	}
	seat, ok := w.seats[seatID]
	if !ok || seat.IsBooked {
		return
	}

	for i, id := range w.selected {
		if id == seatID {
			w.selected = append(w.selected[:i], w.selected[i+1:]...)
			delete(w.passengers, seatID)
			return
		}
	}

	w.selected = append(w.selected, seatID)
	w.passengers[seatID] = models.Passenger{}
}

// SetPassenger records details for a selected seat. Details for a seat
// outside the selected set are dropped.
func (w *Workflow) SetPassenger(seatID int64, p models.Passenger) {
	if !w.IsSelected(seatID) {
		return
	}
	w.passengers[seatID] = p
}

// SetPaymentMethod replaces the payment details. Switching the method
// type keeps the other methods' fields; only the active type's fields
// are validated on submit.
func (w *Workflow) SetPaymentMethod(m models.PaymentMethod) {
	w.payment = m
}

// PaymentMethod returns the current payment details.
func (w *Workflow) PaymentMethod() models.PaymentMethod {
	return w.payment
}

// Total is the price for the current selection, recomputed on demand
// and never cached.
func (w *Workflow) Total() float64 {
	return float64(len(w.selected)) * w.trip.EffectiveFare()
}

// Next advances to the following step if the current step's guard
// passes. On a guard failure the step does not change and the returned
// error carries the message to show inline.
func (w *Workflow) Next() error {
	switch w.step {
	case StepSeatSelection:
		if len(w.selected) == 0 {
			return ErrNoSeatsSelected
		}
		w.step = StepPassengerDetails
		return nil

	case StepPassengerDetails:
		if err := w.validatePassengers(); err != nil {
			return err
		}
		w.step = StepPayment
		return nil

	case StepPayment:
		// Payment -> Confirmation only happens through a successful
		// submission, never through plain navigation.
		return errors.New("complete payment to continue")

	default:
		return ErrWorkflowComplete
	}
}

// Back returns to the previous step. Backward navigation is always
// permitted and clears no data; from the first step it is a no-op.
func (w *Workflow) Back() {
	switch w.step {
	case StepPassengerDetails:
		w.step = StepSeatSelection
	case StepPayment:
		w.step = StepPassengerDetails
	}
}

// validatePassengers checks every entry for a non-empty trimmed name
// and an age within [1,100].
func (w *Workflow) validatePassengers() error {
	for _, seatID := range w.selected {
		p := w.passengers[seatID]
		seat := w.seats[seatID]
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("passenger name for seat %s is required", seat.SeatNumber)
		}
		if p.Age < 1 || p.Age > 100 {
			return fmt.Errorf("passenger age for seat %s must be between 1 and 100", seat.SeatNumber)
		}
	}
	return nil
}

// BeginSubmit validates the payment details and claims the single
// in-flight submission slot. It returns the booking request to send.
// Callers must follow up with CompleteSubmit or FailSubmit exactly once.
func (w *Workflow) BeginSubmit() (*models.CreateBookingRequest, error) {
	if w.step == StepConfirmation {
		return nil, ErrWorkflowComplete
	}
	if w.step != StepPayment {
		return nil, fmt.Errorf("cannot submit from step %d", w.step)
	}
	if w.submitting {
		return nil, ErrSubmissionInFlight
	}
	if err := w.payment.Validate(); err != nil {
		return nil, err
	}

	w.submitting = true
	logging.Debug().
		Str("workflow", w.id.String()).
		Int64("trip", w.trip.ID).
		Int("seats", len(w.selected)).
		Msg("submitting booking")

	return &models.CreateBookingRequest{
		TripID:        w.trip.ID,
		SeatIDs:       w.Selected(),
		PaymentMethod: w.payment,
	}, nil
}

// CompleteSubmit records a successful booking and moves the workflow to
// its terminal Confirmation step.
func (w *Workflow) CompleteSubmit(b *models.Booking) {
	w.submitting = false
	w.result = b
	w.step = StepConfirmation
}

// FailSubmit releases the submission slot after a failed request. The
// workflow stays in Payment so the user can correct and retry.
func (w *Workflow) FailSubmit() {
	w.submitting = false
}
