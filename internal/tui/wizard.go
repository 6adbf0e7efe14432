// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/busdesk/busdesk/internal/booking"
	"github.com/busdesk/busdesk/internal/models"
	"github.com/busdesk/busdesk/internal/ticket"
)

// paymentCycle is the order the payment method key steps through.
var paymentCycle = []string{
	models.PaymentMethodCard,
	models.PaymentMethodUPI,
	models.PaymentMethodWallet,
}

// wizardPage drives the four-step booking workflow for one trip.
// All state transitions live in the workflow; this page renders them
// and translates key presses into workflow calls.
type wizardPage struct {
	deps *deps
	trip models.Trip

	loading bool
	flow    *booking.Workflow

	// seatCursor indexes the seat grid on the selection step.
	seatCursor int

	// passengerForms holds one form per selected seat, built when the
	// passenger step opens and flushed back on every change.
	passengerForms []*form
	passengerSeat  int

	paymentIdx  int
	paymentForm *form

	errText    string
	ticketPath string
}

func newWizardPage(d *deps, payload interface{}) *wizardPage {
	trip, _ := payload.(models.Trip)
	return &wizardPage{deps: d, trip: trip, loading: true}
}

// Init fetches the seat snapshot the workflow starts from.
func (p *wizardPage) Init() tea.Cmd {
	client := p.deps.client
	trip := p.trip
	timeout := p.deps.cfg.API.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		seats, err := client.GetTripSeats(ctx, trip.ID)
		return seatsLoadedMsg{trip: trip, seats: seats, err: err}
	}
}

func (p *wizardPage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case seatsLoadedMsg:
		p.loading = false
		if msg.err != nil {
			// Initial load failure: the user retries by navigating back
			// to search, nothing retries automatically.
			p.errText = "Could not load seats: " + msg.err.Error()
			return p, nil
		}
		p.flow = booking.New(msg.trip, msg.seats)
		return p, nil

	case bookingSubmittedMsg:
		if p.flow == nil {
			return p, nil
		}
		if msg.err != nil {
			p.flow.FailSubmit()
			p.errText = msg.err.Error()
			return p, nil
		}
		p.flow.CompleteSubmit(msg.booking)
		p.errText = ""
		return p, nil

	case ticketSavedMsg:
		if msg.err != nil {
			p.errText = "Ticket export failed: " + msg.err.Error()
		} else {
			p.ticketPath = msg.path
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	return p, p.routeToForms(msg)
}

// routeToForms forwards non-key messages (cursor blinks) to whichever
// form is on screen.
func (p *wizardPage) routeToForms(msg tea.Msg) tea.Cmd {
	if p.flow == nil {
		return nil
	}
	switch p.flow.Step() {
	case booking.StepPassengerDetails:
		if p.passengerSeat < len(p.passengerForms) {
			cmd, _ := p.passengerForms[p.passengerSeat].update(msg)
			return cmd
		}
	case booking.StepPayment:
		if p.paymentForm != nil {
			cmd, _ := p.paymentForm.update(msg)
			return cmd
		}
	}
	return nil
}

func (p *wizardPage) handleKey(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	if msg.String() == "esc" && (p.flow == nil || p.flow.Step() == booking.StepSeatSelection || p.flow.Step() == booking.StepConfirmation) {
		// Leaving the wizard discards all local workflow state.
		return p, func() tea.Msg { return navigateMsg{page: PageSearch} }
	}
	if p.flow == nil {
		return p, nil
	}

	switch p.flow.Step() {
	case booking.StepSeatSelection:
		return p.handleSeatKey(msg)
	case booking.StepPassengerDetails:
		return p.handlePassengerKey(msg)
	case booking.StepPayment:
		return p.handlePaymentKey(msg)
	default:
		return p.handleConfirmationKey(msg)
	}
}

// ===== Step 1: seat selection =====

func (p *wizardPage) handleSeatKey(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	seats := p.flow.Seats()
	switch msg.String() {
	case "left", "h":
		if p.seatCursor > 0 {
			p.seatCursor--
		}
	case "right", "l":
		if p.seatCursor < len(seats)-1 {
			p.seatCursor++
		}
	case " ", "enter":
		if p.seatCursor < len(seats) {
			p.flow.ToggleSeat(seats[p.seatCursor].ID)
			p.errText = ""
		}
	case "n":
		if err := p.flow.Next(); err != nil {
			p.errText = err.Error()
			return p, nil
		}
		p.errText = ""
		p.buildPassengerForms()
	}
	return p, nil
}

// ===== Step 2: passenger details =====

// buildPassengerForms creates one entry form per selected seat,
// pre-filled with whatever was entered before.
func (p *wizardPage) buildPassengerForms() {
	selected := p.flow.Selected()
	p.passengerForms = make([]*form, len(selected))
	p.passengerSeat = 0
	for i, seatID := range selected {
		f := newForm(
			field{label: "Name", placeholder: "Full name"},
			field{label: "Age", limit: 3},
			field{label: "Gender (optional)", limit: 12},
		)
		if prev, ok := p.flow.Passenger(seatID); ok {
			f.setValue(0, prev.Name)
			if prev.Age > 0 {
				f.setValue(1, strconv.Itoa(prev.Age))
			}
			f.setValue(2, prev.Gender)
		}
		p.passengerForms[i] = f
	}
}

// flushPassengers writes the form contents into the workflow.
func (p *wizardPage) flushPassengers() {
	for i, seatID := range p.flow.Selected() {
		f := p.passengerForms[i]
		age, _ := strconv.Atoi(f.value(1))
		p.flow.SetPassenger(seatID, models.Passenger{
			Name:   f.value(0),
			Age:    age,
			Gender: f.value(2),
		})
	}
}

func (p *wizardPage) handlePassengerKey(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Enter walks forward: next passenger, then the payment step.
		p.flushPassengers()
		if p.passengerSeat < len(p.passengerForms)-1 {
			p.passengerSeat++
			p.errText = ""
			return p, nil
		}
		if err := p.flow.Next(); err != nil {
			p.errText = err.Error()
			return p, nil
		}
		p.errText = ""
		p.buildPaymentForm()
		return p, nil
	case "esc":
		// Esc walks backward: previous passenger, then seat selection.
		p.flushPassengers()
		p.errText = ""
		if p.passengerSeat > 0 {
			p.passengerSeat--
			return p, nil
		}
		p.flow.Back()
		return p, nil
	}

	cmd, _ := p.passengerForms[p.passengerSeat].update(msg)
	return p, cmd
}

// ===== Step 3: payment =====

// buildPaymentForm creates the fields for the active payment method.
func (p *wizardPage) buildPaymentForm() {
	switch paymentCycle[p.paymentIdx] {
	case models.PaymentMethodCard:
		p.paymentForm = newForm(
			field{label: "Card number", limit: 19},
			field{label: "Expiry (MM/YY)", limit: 5},
			field{label: "CVV", secret: true, limit: 4},
			field{label: "Cardholder name"},
		)
	case models.PaymentMethodUPI:
		p.paymentForm = newForm(
			field{label: "UPI id", placeholder: "you@bank"},
		)
	default:
		p.paymentForm = newForm(
			field{label: "Wallet", placeholder: "paytm"},
		)
	}
}

// paymentMethod assembles the tagged union from the active form.
func (p *wizardPage) paymentMethod() models.PaymentMethod {
	m := models.PaymentMethod{Type: paymentCycle[p.paymentIdx]}
	switch m.Type {
	case models.PaymentMethodCard:
		m.CardNumber = p.paymentForm.value(0)
		m.ExpiryDate = p.paymentForm.value(1)
		m.CVV = p.paymentForm.value(2)
		m.CardholderName = p.paymentForm.value(3)
	case models.PaymentMethodUPI:
		m.UPIID = p.paymentForm.value(0)
	default:
		m.WalletType = p.paymentForm.value(0)
	}
	return m
}

func (p *wizardPage) handlePaymentKey(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+p":
		if !p.flow.Submitting() {
			p.paymentIdx = (p.paymentIdx + 1) % len(paymentCycle)
			p.buildPaymentForm()
		}
		return p, nil

	case "enter":
		if p.flow.Submitting() {
			// The trigger is disabled while a request is in flight.
			return p, nil
		}
		p.flow.SetPaymentMethod(p.paymentMethod())
		req, err := p.flow.BeginSubmit()
		if err != nil {
			p.errText = err.Error()
			return p, nil
		}
		p.errText = ""
		client := p.deps.client
		timeout := p.deps.cfg.API.Timeout
		return p, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			b, err := client.CreateBooking(ctx, *req)
			return bookingSubmittedMsg{booking: b, err: err}
		}

	case "esc":
		if !p.flow.Submitting() {
			p.flow.Back()
			p.errText = ""
		}
		return p, nil
	}

	cmd, _ := p.paymentForm.update(msg)
	return p, cmd
}

// ===== Step 4: confirmation =====

func (p *wizardPage) handleConfirmationKey(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "s":
		if b := p.flow.Result(); b != nil && p.ticketPath == "" {
			dir := p.deps.cfg.State.TicketDir
			return p, func() tea.Msg {
				path, err := ticket.Save(dir, b)
				return ticketSavedMsg{path: path, err: err}
			}
		}
	case "d", "enter":
		return p, func() tea.Msg { return navigateMsg{page: PageDashboard} }
	}
	return p, nil
}

// ===== View =====

func (p *wizardPage) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Book %s -> %s",
		p.trip.Route.Source, p.trip.Route.Destination)))
	b.WriteString("\n")

	if p.loading {
		b.WriteString("\n" + labelStyle.Render("Loading seats..."))
		return b.String()
	}
	if p.flow == nil {
		if p.errText != "" {
			b.WriteString("\n" + errorStyle.Render(p.errText))
		}
		b.WriteString("\n" + helpStyle.Render("esc: back to search"))
		return b.String()
	}

	b.WriteString(p.stepBar())
	b.WriteString("\n\n")

	switch p.flow.Step() {
	case booking.StepSeatSelection:
		b.WriteString(p.viewSeats())
	case booking.StepPassengerDetails:
		b.WriteString(p.viewPassengers())
	case booking.StepPayment:
		b.WriteString(p.viewPayment())
	default:
		b.WriteString(p.viewConfirmation())
	}

	if p.errText != "" {
		b.WriteString("\n" + errorStyle.Render(p.errText))
	}
	return b.String()
}

// stepBar renders the numbered wizard header.
func (p *wizardPage) stepBar() string {
	parts := make([]string, 0, 4)
	for s := booking.StepSeatSelection; s <= booking.StepConfirmation; s++ {
		label := fmt.Sprintf("%d. %s", int(s), s)
		if s == p.flow.Step() {
			label = selectedStyle.Render(label)
		} else {
			label = labelStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func (p *wizardPage) viewSeats() string {
	var b strings.Builder
	seats := p.flow.Seats()
	for i, seat := range seats {
		var cell string
		switch {
		case seat.IsBooked:
			cell = seatBookedStyle.Render(seat.SeatNumber)
		case p.flow.IsSelected(seat.ID):
			cell = seatPickedStyle.Render(seat.SeatNumber)
		default:
			cell = seatFreeStyle.Render(seat.SeatNumber)
		}
		if i == p.seatCursor {
			cell = "[" + cell + "]"
		} else {
			cell = " " + cell + " "
		}
		b.WriteString(cell)
		if (i+1)%4 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Selected: %d   Total: %.2f\n",
		len(p.flow.Selected()), p.flow.Total()))
	b.WriteString(helpStyle.Render("arrows: move  space: toggle  n: next  esc: abandon"))
	return b.String()
}

func (p *wizardPage) viewPassengers() string {
	var b strings.Builder
	selected := p.flow.Selected()
	seats := p.flow.Seats()
	seatNumber := func(id int64) string {
		for _, s := range seats {
			if s.ID == id {
				return s.SeatNumber
			}
		}
		return "?"
	}

	b.WriteString(fmt.Sprintf("Passenger %d of %d (seat %s)\n\n",
		p.passengerSeat+1, len(selected), seatNumber(selected[p.passengerSeat])))
	b.WriteString(p.passengerForms[p.passengerSeat].view())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: next  esc: previous  tab: next field"))
	return b.String()
}

func (p *wizardPage) viewPayment() string {
	var b strings.Builder
	b.WriteString("Method: " + selectedStyle.Render(paymentCycle[p.paymentIdx]))
	b.WriteString(fmt.Sprintf("   Total: %.2f\n\n", p.flow.Total()))
	if p.paymentForm == nil {
		p.buildPaymentForm()
	}
	b.WriteString(p.paymentForm.view())
	b.WriteString("\n")
	if p.flow.Submitting() {
		b.WriteString(labelStyle.Render("Submitting booking..."))
	} else {
		b.WriteString(helpStyle.Render("ctrl+p: change method  enter: pay  esc: back"))
	}
	return b.String()
}

func (p *wizardPage) viewConfirmation() string {
	var b strings.Builder
	result := p.flow.Result()
	b.WriteString(successStyle.Render("Booking confirmed!"))
	b.WriteString("\n\n")
	if result != nil {
		b.WriteString(fmt.Sprintf("Reference : #%d\n", result.ID))
		b.WriteString(fmt.Sprintf("Status    : %s\n", result.Status))
	}
	b.WriteString(fmt.Sprintf("Total paid: %.2f\n", p.flow.Total()))
	if p.ticketPath != "" {
		b.WriteString("\n" + successStyle.Render("Ticket saved: "+p.ticketPath) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("s: save PDF ticket  d: dashboard  esc: search"))
	return b.String()
}
