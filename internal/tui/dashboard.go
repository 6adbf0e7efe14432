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
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/busdesk/busdesk/internal/api"
	"github.com/busdesk/busdesk/internal/logging"
	"github.com/busdesk/busdesk/internal/models"
	"github.com/busdesk/busdesk/internal/search"
	"github.com/busdesk/busdesk/internal/ticket"
)

// dashboardTab selects which list the dashboard shows.
type dashboardTab int

const (
	tabBookings dashboardTab = iota
	tabPayments
)

// dashboardPage lists the signed-in user's bookings and payments and
// offers cancel and ticket export on individual bookings.
type dashboardPage struct {
	deps *deps

	tab      dashboardTab
	loading  bool
	bookings []models.Booking
	payments []models.Payment
	tbl      table.Model

	// degraded means the bookings list is sample data because the
	// backend was unreachable. Sample bookings are read-only.
	degraded bool

	// detail is the booking opened from the list, nil while listing.
	detail     *models.Booking
	cancelled  bool
	ticketPath string

	errText string
}

func newDashboardPage(d *deps) *dashboardPage {
	p := &dashboardPage{deps: d, loading: true}
	p.tbl = table.New(
		table.WithColumns(bookingColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	return p
}

func bookingColumns() []table.Column {
	return []table.Column{
		{Title: "Ref", Width: 6},
		{Title: "Route", Width: 26},
		{Title: "Departs", Width: 17},
		{Title: "Seats", Width: 6},
		{Title: "Amount", Width: 8},
		{Title: "Status", Width: 10},
	}
}

func paymentColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Booking", Width: 8},
		{Title: "Amount", Width: 8},
		{Title: "Method", Width: 8},
		{Title: "Status", Width: 10},
		{Title: "Paid at", Width: 17},
	}
}

func (p *dashboardPage) Init() tea.Cmd {
	return p.fetchBookings()
}

func (p *dashboardPage) fetchBookings() tea.Cmd {
	client := p.deps.client
	timeout := p.deps.cfg.API.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		bookings, err := client.MyBookings(ctx)
		return bookingsLoadedMsg{bookings: bookings, err: err}
	}
}

func (p *dashboardPage) fetchPayments() tea.Cmd {
	client := p.deps.client
	timeout := p.deps.cfg.API.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		payments, err := client.MyPayments(ctx)
		return paymentsLoadedMsg{payments: payments, err: err}
	}
}

func (p *dashboardPage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case bookingsLoadedMsg:
		p.loading = false
		if msg.err != nil {
			if api.IsUnavailable(msg.err) {
				// Backend down: show the sample list, clearly marked.
				logging.Warn().Err(msg.err).Msg("dashboard fell back to sample bookings")
				p.degraded = true
				p.bookings = search.SampleBookings(time.Now())
				p.errText = ""
				if p.tab == tabBookings {
					p.rebuildTable()
				}
				return p, nil
			}
			p.errText = msg.err.Error()
			return p, nil
		}
		p.errText = ""
		p.degraded = false
		p.bookings = msg.bookings
		if p.tab == tabBookings {
			p.rebuildTable()
		}
		return p, nil

	case paymentsLoadedMsg:
		p.loading = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		p.errText = ""
		p.payments = msg.payments
		if p.tab == tabPayments {
			p.rebuildTable()
		}
		return p, nil

	case bookingDetailMsg:
		p.loading = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		p.errText = ""
		p.detail = msg.booking
		p.cancelled = false
		p.ticketPath = ""
		return p, nil

	case cancelResultMsg:
		p.loading = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		p.errText = ""
		p.cancelled = true
		if p.detail != nil && p.detail.ID == msg.id {
			p.detail.Status = models.BookingStatusCancelled
		}
		// Refetch so the list reflects the new status.
		p.loading = true
		return p, p.fetchBookings()

	case ticketSavedMsg:
		if msg.err != nil {
			p.errText = "Ticket export failed: " + msg.err.Error()
		} else {
			p.errText = ""
			p.ticketPath = msg.path
		}
		return p, nil

	case tea.KeyMsg:
		if p.detail != nil {
			return p.handleDetailKey(msg)
		}
		return p.handleListKey(msg)
	}
	return p, nil
}

func (p *dashboardPage) handleListKey(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if p.tab == tabBookings {
			p.tab = tabPayments
			if p.payments == nil {
				p.loading = true
				p.rebuildTable()
				return p, p.fetchPayments()
			}
		} else {
			p.tab = tabBookings
		}
		p.rebuildTable()
		return p, nil

	case "r":
		p.loading = true
		if p.tab == tabPayments {
			return p, p.fetchPayments()
		}
		return p, p.fetchBookings()

	case "enter":
		if p.tab != tabBookings {
			return p, nil
		}
		row := p.tbl.SelectedRow()
		if row == nil {
			return p, nil
		}
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return p, nil
		}
		if p.degraded {
			// Sample bookings exist only locally; open them in place.
			for i := range p.bookings {
				if p.bookings[i].ID == id {
					b := p.bookings[i]
					p.detail = &b
					p.cancelled = false
					p.ticketPath = ""
					break
				}
			}
			return p, nil
		}
		p.loading = true
		client := p.deps.client
		timeout := p.deps.cfg.API.Timeout
		return p, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			b, err := client.GetBooking(ctx, id)
			return bookingDetailMsg{booking: b, err: err}
		}

	case "esc":
		return p, func() tea.Msg { return navigateMsg{page: PageHome} }
	}

	var cmd tea.Cmd
	p.tbl, cmd = p.tbl.Update(msg)
	return p, cmd
}

func (p *dashboardPage) handleDetailKey(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.detail = nil
		p.errText = ""
		return p, nil

	case "c":
		b := p.detail
		if b == nil || p.degraded || !b.IsUpcoming(time.Now()) || p.loading {
			return p, nil
		}
		p.loading = true
		client := p.deps.client
		timeout := p.deps.cfg.API.Timeout
		id := b.ID
		return p, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return cancelResultMsg{id: id, err: client.CancelBooking(ctx, id)}
		}

	case "s":
		b := p.detail
		if b == nil || p.degraded || b.Status != models.BookingStatusConfirmed || p.ticketPath != "" {
			return p, nil
		}
		dir := p.deps.cfg.State.TicketDir
		return p, func() tea.Msg {
			path, err := ticket.Save(dir, b)
			return ticketSavedMsg{path: path, err: err}
		}
	}
	return p, nil
}

// rebuildTable swaps the table's columns and rows for the active tab.
func (p *dashboardPage) rebuildTable() {
	if p.tab == tabPayments {
		rows := make([]table.Row, 0, len(p.payments))
		for _, pay := range p.payments {
			rows = append(rows, table.Row{
				strconv.FormatInt(pay.ID, 10),
				strconv.FormatInt(pay.BookingID, 10),
				fmt.Sprintf("%.2f", pay.Amount),
				pay.Method,
				pay.Status,
				pay.PaymentTime.Format("02 Jan 03:04 PM"),
			})
		}
		p.tbl.SetColumns(paymentColumns())
		p.tbl.SetRows(rows)
		return
	}

	rows := make([]table.Row, 0, len(p.bookings))
	for _, b := range p.bookings {
		rows = append(rows, table.Row{
			strconv.FormatInt(b.ID, 10),
			b.Trip.Route.Source + " -> " + b.Trip.Route.Destination,
			b.Trip.DepartureTime.Format("02 Jan 03:04 PM"),
			strconv.Itoa(len(b.Seats)),
			fmt.Sprintf("%.2f", b.TotalAmount),
			b.Status,
		})
	}
	p.tbl.SetColumns(bookingColumns())
	p.tbl.SetRows(rows)
}

func (p *dashboardPage) View() string {
	if p.detail != nil {
		return p.viewDetail()
	}

	var b strings.Builder
	bookingsTab := "My bookings"
	paymentsTab := "My payments"
	if p.tab == tabBookings {
		bookingsTab = selectedStyle.Render(bookingsTab)
		paymentsTab = labelStyle.Render(paymentsTab)
	} else {
		bookingsTab = labelStyle.Render(bookingsTab)
		paymentsTab = selectedStyle.Render(paymentsTab)
	}
	b.WriteString(headerStyle.Render("Dashboard"))
	b.WriteString("\n" + bookingsTab + "  " + paymentsTab + "\n")
	if p.degraded && p.tab == tabBookings {
		b.WriteString(degradedStyle.Render("OFFLINE: showing sample bookings"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case p.loading:
		b.WriteString(labelStyle.Render("Loading..."))
	case p.tab == tabBookings && len(p.bookings) == 0:
		b.WriteString(labelStyle.Render("No bookings yet. Search for a trip to get started."))
	case p.tab == tabPayments && len(p.payments) == 0:
		b.WriteString(labelStyle.Render("No payments recorded."))
	default:
		b.WriteString(p.tbl.View())
	}

	if p.errText != "" {
		b.WriteString("\n" + errorStyle.Render(p.errText))
	}
	b.WriteString("\n" + helpStyle.Render("tab: switch list  enter: open booking  r: refresh  esc: home"))
	return b.String()
}

func (p *dashboardPage) viewDetail() string {
	b := p.detail
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("Booking #%d", b.ID)))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Status    : %s\n", b.Status))
	sb.WriteString(fmt.Sprintf("Route     : %s -> %s\n", b.Trip.Route.Source, b.Trip.Route.Destination))
	sb.WriteString(fmt.Sprintf("Operator  : %s (%s)\n", b.Trip.Bus.OperatorName, b.Trip.Bus.BusType))
	sb.WriteString(fmt.Sprintf("Departs   : %s\n", b.Trip.DepartureTime.Format("02 Jan 2006 03:04 PM")))
	sb.WriteString(fmt.Sprintf("Arrives   : %s\n", b.Trip.ArrivalTime.Format("02 Jan 2006 03:04 PM")))

	seatNumbers := make([]string, 0, len(b.Seats))
	for _, s := range b.Seats {
		seatNumbers = append(seatNumbers, s.SeatNumber)
	}
	sb.WriteString(fmt.Sprintf("Seats     : %s\n", strings.Join(seatNumbers, ", ")))
	sb.WriteString(fmt.Sprintf("Total     : %.2f\n", b.TotalAmount))
	if b.Payment != nil {
		sb.WriteString(fmt.Sprintf("Payment   : %s via %s\n", b.Payment.Status, b.Payment.Method))
	}

	if p.cancelled {
		sb.WriteString("\n" + successStyle.Render("Booking cancelled."))
	}
	if p.ticketPath != "" {
		sb.WriteString("\n" + successStyle.Render("Ticket saved: "+p.ticketPath))
	}
	if p.errText != "" {
		sb.WriteString("\n" + errorStyle.Render(p.errText))
	}

	help := []string{"esc: back"}
	if !p.degraded && b.IsUpcoming(time.Now()) {
		help = append([]string{"c: cancel booking"}, help...)
	}
	if !p.degraded && b.Status == models.BookingStatusConfirmed {
		help = append([]string{"s: save PDF ticket"}, help...)
	}
	sb.WriteString("\n\n" + helpStyle.Render(strings.Join(help, "  ")))
	return sb.String()
}
