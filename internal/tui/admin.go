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

	"github.com/busdesk/busdesk/internal/models"
	"github.com/busdesk/busdesk/internal/validation"
)

// adminTab selects which resource the console manages.
type adminTab int

const (
	adminBuses adminTab = iota
	adminRoutes
	adminTrips
	adminPayments
)

func (t adminTab) String() string {
	switch t {
	case adminBuses:
		return "Buses"
	case adminRoutes:
		return "Routes"
	case adminTrips:
		return "Trips"
	default:
		return "Payments"
	}
}

// editable reports whether the tab supports create, edit, and delete.
// Payments are recorded by the booking flow and only inspected here.
func (t adminTab) editable() bool {
	return t != adminPayments
}

// adminMode is the console's sub-state within a tab.
type adminMode int

const (
	adminList adminMode = iota
	adminCreate
	adminEdit
)

// adminDateTimeLayout is the format the trip schedule fields accept.
const adminDateTimeLayout = "2006-01-02 15:04"

// adminPage is the admin console: one tab per backend resource, with
// list, create, edit, and delete on the editable ones and a read-only
// ledger of every payment. It is only reachable through the route
// guard, so every visitor holds an admin session.
type adminPage struct {
	deps *deps

	tab     adminTab
	mode    adminMode
	loading bool
	saving  bool

	buses    []models.Bus
	routes   []models.Route
	trips    []models.Trip
	payments []models.Payment
	tbl      table.Model

	// editID is the resource being edited, zero when creating.
	editID int64
	form   *form

	errText string
	notice  string
}

func newAdminPage(d *deps) *adminPage {
	p := &adminPage{deps: d, loading: true}
	p.tbl = table.New(
		table.WithColumns(busColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	return p
}

func busColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Number", Width: 12},
		{Title: "Type", Width: 12},
		{Title: "Operator", Width: 20},
		{Title: "Seats", Width: 6},
	}
}

func routeColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Source", Width: 16},
		{Title: "Destination", Width: 16},
		{Title: "Km", Width: 7},
		{Title: "Duration", Width: 10},
	}
}

func tripColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Route", Width: 24},
		{Title: "Bus", Width: 12},
		{Title: "Departs", Width: 17},
		{Title: "Fare", Width: 7},
	}
}

func (p *adminPage) Init() tea.Cmd {
	return p.fetch()
}

// fetch loads the active tab's list.
func (p *adminPage) fetch() tea.Cmd {
	client := p.deps.client
	timeout := p.deps.cfg.API.Timeout
	tab := p.tab
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		switch tab {
		case adminBuses:
			buses, err := client.ListBuses(ctx)
			return adminDataMsg{buses: buses, err: err}
		case adminRoutes:
			routes, err := client.ListRoutes(ctx)
			return adminDataMsg{routes: routes, err: err}
		case adminTrips:
			trips, err := client.ListTrips(ctx)
			return adminDataMsg{trips: trips, err: err}
		default:
			payments, err := client.AllPayments(ctx)
			return adminDataMsg{payments: payments, err: err}
		}
	}
}

func (p *adminPage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case adminDataMsg:
		p.loading = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		p.errText = ""
		switch p.tab {
		case adminBuses:
			p.buses = msg.buses
		case adminRoutes:
			p.routes = msg.routes
		case adminTrips:
			p.trips = msg.trips
		default:
			p.payments = msg.payments
		}
		p.rebuildTable()
		return p, nil

	case adminSavedMsg:
		p.saving = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		p.errText = ""
		p.notice = "Saved."
		p.mode = adminList
		p.form = nil
		p.loading = true
		return p, p.fetch()

	case tea.KeyMsg:
		if p.mode == adminList {
			return p.handleListKey(msg)
		}
		return p.handleFormKey(msg)
	}

	if p.form != nil {
		cmd, _ := p.form.update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *adminPage) handleListKey(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		p.tab = (p.tab + 1) % 4
		p.notice = ""
		p.errText = ""
		p.loading = true
		p.rebuildTable()
		return p, p.fetch()

	case "r":
		p.loading = true
		return p, p.fetch()

	case "a":
		if !p.tab.editable() {
			return p, nil
		}
		p.mode = adminCreate
		p.editID = 0
		p.notice = ""
		p.errText = ""
		p.form = p.emptyForm()
		return p, nil

	case "e":
		id, ok := p.selectedID()
		if !ok || !p.tab.editable() {
			return p, nil
		}
		f, ok := p.prefilledForm(id)
		if !ok {
			return p, nil
		}
		p.mode = adminEdit
		p.editID = id
		p.notice = ""
		p.errText = ""
		p.form = f
		return p, nil

	case "x":
		id, ok := p.selectedID()
		if !ok || p.saving || !p.tab.editable() {
			return p, nil
		}
		p.saving = true
		p.notice = ""
		return p, p.deleteCmd(id)

	case "esc":
		return p, func() tea.Msg { return navigateMsg{page: PageHome} }
	}

	var cmd tea.Cmd
	p.tbl, cmd = p.tbl.Update(msg)
	return p, cmd
}

func (p *adminPage) handleFormKey(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !p.saving {
			p.mode = adminList
			p.form = nil
			p.errText = ""
		}
		return p, nil

	case "enter":
		if p.saving {
			return p, nil
		}
		cmd, err := p.saveCmd()
		if err != nil {
			p.errText = err.Error()
			return p, nil
		}
		p.errText = ""
		p.saving = true
		return p, cmd
	}

	cmd, _ := p.form.update(msg)
	return p, cmd
}

// selectedID parses the ID column of the highlighted row.
func (p *adminPage) selectedID() (int64, bool) {
	row := p.tbl.SelectedRow()
	if row == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ===== Forms =====

func (p *adminPage) emptyForm() *form {
	switch p.tab {
	case adminBuses:
		return newForm(
			field{label: "Bus number", limit: 16},
			field{label: "Type (AC, Non-AC, AC Sleeper)", limit: 12},
			field{label: "Operator"},
			field{label: "Total seats", limit: 3},
		)
	case adminRoutes:
		return newForm(
			field{label: "Source"},
			field{label: "Destination"},
			field{label: "Distance (km)", limit: 8},
			field{label: "Duration (optional)", placeholder: "4h 30m"},
		)
	default:
		return newForm(
			field{label: "Route id", limit: 8},
			field{label: "Bus id", limit: 8},
			field{label: "Departure (YYYY-MM-DD HH:MM)", limit: 16},
			field{label: "Arrival (YYYY-MM-DD HH:MM)", limit: 16},
			field{label: "Fare", limit: 8},
		)
	}
}

func (p *adminPage) prefilledForm(id int64) (*form, bool) {
	f := p.emptyForm()
	switch p.tab {
	case adminBuses:
		for _, b := range p.buses {
			if b.ID == id {
				f.setValue(0, b.BusNumber)
				f.setValue(1, b.BusType)
				f.setValue(2, b.OperatorName)
				f.setValue(3, strconv.Itoa(b.TotalSeats))
				return f, true
			}
		}
	case adminRoutes:
		for _, r := range p.routes {
			if r.ID == id {
				f.setValue(0, r.Source)
				f.setValue(1, r.Destination)
				f.setValue(2, strconv.FormatFloat(r.DistanceKm, 'f', -1, 64))
				f.setValue(3, r.Duration)
				return f, true
			}
		}
	default:
		for _, t := range p.trips {
			if t.ID == id {
				f.setValue(0, strconv.FormatInt(t.Route.ID, 10))
				f.setValue(1, strconv.FormatInt(t.Bus.ID, 10))
				f.setValue(2, t.DepartureTime.Format(adminDateTimeLayout))
				f.setValue(3, t.ArrivalTime.Format(adminDateTimeLayout))
				f.setValue(4, strconv.FormatFloat(t.Fare, 'f', -1, 64))
				return f, true
			}
		}
	}
	return nil, false
}

// ===== Save and delete commands =====

// saveCmd validates the form and returns the create or update call for
// the active tab. Validation failures never leave the client.
func (p *adminPage) saveCmd() (tea.Cmd, error) {
	client := p.deps.client
	timeout := p.deps.cfg.API.Timeout
	editID := p.editID

	switch p.tab {
	case adminBuses:
		seats, _ := strconv.Atoi(p.form.value(3))
		bus := models.Bus{
			BusNumber:    p.form.value(0),
			BusType:      p.form.value(1),
			OperatorName: p.form.value(2),
			TotalSeats:   seats,
		}
		if errs := validation.ValidateStruct(bus); errs != nil {
			return nil, errs
		}
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			var err error
			if editID == 0 {
				_, err = client.CreateBus(ctx, bus)
			} else {
				_, err = client.UpdateBus(ctx, editID, bus)
			}
			return adminSavedMsg{err: err}
		}, nil

	case adminRoutes:
		distance, _ := strconv.ParseFloat(p.form.value(2), 64)
		route := models.Route{
			Source:      p.form.value(0),
			Destination: p.form.value(1),
			DistanceKm:  distance,
			Duration:    p.form.value(3),
		}
		if errs := validation.ValidateStruct(route); errs != nil {
			return nil, errs
		}
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			var err error
			if editID == 0 {
				_, err = client.CreateRoute(ctx, route)
			} else {
				_, err = client.UpdateRoute(ctx, editID, route)
			}
			return adminSavedMsg{err: err}
		}, nil

	default:
		routeID, err := strconv.ParseInt(p.form.value(0), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("route id must be a number")
		}
		busID, err := strconv.ParseInt(p.form.value(1), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bus id must be a number")
		}
		departure, err := time.ParseInLocation(adminDateTimeLayout, p.form.value(2), time.Local)
		if err != nil {
			return nil, fmt.Errorf("departure must look like %s", adminDateTimeLayout)
		}
		arrival, err := time.ParseInLocation(adminDateTimeLayout, p.form.value(3), time.Local)
		if err != nil {
			return nil, fmt.Errorf("arrival must look like %s", adminDateTimeLayout)
		}
		if !arrival.After(departure) {
			return nil, fmt.Errorf("arrival must be after departure")
		}
		fare, _ := strconv.ParseFloat(p.form.value(4), 64)
		trip := models.TripUpsert{
			RouteID:       routeID,
			BusID:         busID,
			DepartureTime: departure,
			ArrivalTime:   arrival,
			Fare:          fare,
		}
		if errs := validation.ValidateStruct(trip); errs != nil {
			return nil, errs
		}
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			var err error
			if editID == 0 {
				_, err = client.CreateTrip(ctx, trip)
			} else {
				_, err = client.UpdateTrip(ctx, editID, trip)
			}
			return adminSavedMsg{err: err}
		}, nil
	}
}

func (p *adminPage) deleteCmd(id int64) tea.Cmd {
	client := p.deps.client
	timeout := p.deps.cfg.API.Timeout
	tab := p.tab
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		var err error
		switch tab {
		case adminBuses:
			err = client.DeleteBus(ctx, id)
		case adminRoutes:
			err = client.DeleteRoute(ctx, id)
		default:
			err = client.DeleteTrip(ctx, id)
		}
		return adminSavedMsg{err: err}
	}
}

// ===== Table =====

func (p *adminPage) rebuildTable() {
	switch p.tab {
	case adminBuses:
		rows := make([]table.Row, 0, len(p.buses))
		for _, b := range p.buses {
			rows = append(rows, table.Row{
				strconv.FormatInt(b.ID, 10),
				b.BusNumber,
				b.BusType,
				b.OperatorName,
				strconv.Itoa(b.TotalSeats),
			})
		}
		p.tbl.SetColumns(busColumns())
		p.tbl.SetRows(rows)

	case adminRoutes:
		rows := make([]table.Row, 0, len(p.routes))
		for _, r := range p.routes {
			rows = append(rows, table.Row{
				strconv.FormatInt(r.ID, 10),
				r.Source,
				r.Destination,
				strconv.FormatFloat(r.DistanceKm, 'f', 1, 64),
				r.Duration,
			})
		}
		p.tbl.SetColumns(routeColumns())
		p.tbl.SetRows(rows)

	case adminTrips:
		rows := make([]table.Row, 0, len(p.trips))
		for _, t := range p.trips {
			rows = append(rows, table.Row{
				strconv.FormatInt(t.ID, 10),
				t.Route.Source + " -> " + t.Route.Destination,
				t.Bus.BusNumber,
				t.DepartureTime.Format("02 Jan 03:04 PM"),
				fmt.Sprintf("%.2f", t.Fare),
			})
		}
		p.tbl.SetColumns(tripColumns())
		p.tbl.SetRows(rows)

	default:
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
	}
}

// ===== View =====

func (p *adminPage) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Admin console"))
	b.WriteString("\n")

	tabs := make([]string, 0, 4)
	for t := adminBuses; t <= adminPayments; t++ {
		label := t.String()
		if t == p.tab {
			label = selectedStyle.Render(label)
		} else {
			label = labelStyle.Render(label)
		}
		tabs = append(tabs, label)
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n\n")

	if p.mode != adminList {
		verb := "New"
		if p.mode == adminEdit {
			verb = fmt.Sprintf("Edit #%d", p.editID)
		}
		b.WriteString(labelStyle.Render(verb+" "+strings.ToLower(p.tab.String())) + "\n\n")
		b.WriteString(p.form.view())
		b.WriteString("\n")
		if p.saving {
			b.WriteString(labelStyle.Render("Saving..."))
		} else {
			b.WriteString(helpStyle.Render("enter: save  esc: cancel"))
		}
		if p.errText != "" {
			b.WriteString("\n" + errorStyle.Render(p.errText))
		}
		return b.String()
	}

	if p.loading {
		b.WriteString(labelStyle.Render("Loading..."))
	} else {
		b.WriteString(p.tbl.View())
	}
	if p.notice != "" {
		b.WriteString("\n" + successStyle.Render(p.notice))
	}
	if p.errText != "" {
		b.WriteString("\n" + errorStyle.Render(p.errText))
	}
	if p.tab.editable() {
		b.WriteString("\n" + helpStyle.Render("tab: resource  a: add  e: edit  x: delete  r: refresh  esc: home"))
	} else {
		b.WriteString("\n" + helpStyle.Render("tab: resource  r: refresh  esc: home"))
	}
	return b.String()
}
