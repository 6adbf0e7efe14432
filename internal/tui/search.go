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

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/busdesk/busdesk/internal/api"
	"github.com/busdesk/busdesk/internal/logging"
	"github.com/busdesk/busdesk/internal/models"
	"github.com/busdesk/busdesk/internal/search"
)

// busTypeCycle is the order the bus-type filter steps through.
var busTypeCycle = []string{"", models.BusTypeAC, models.BusTypeNonAC, models.BusTypeACSleeper}

// bucketCycle is the order the departure filter steps through.
var bucketCycle = []string{"", search.BucketMorning, search.BucketAfternoon, search.BucketEvening, search.BucketNight}

// searchPage is the trip search screen: a query form, the fetched
// results, and the client-side filters over them.
type searchPage struct {
	deps *deps

	query      *form
	filterForm *form
	filtering  bool

	busy    bool
	errText string

	// fetched is the full result set; filters re-derive the table from
	// it without ever re-querying the backend.
	fetched   *search.Result
	busType   int
	bucket    int
	results   table.Model
	haveTable bool
}

func newSearchPage(d *deps) *searchPage {
	return &searchPage{
		deps: d,
		query: newForm(
			field{label: "From", placeholder: "Pune"},
			field{label: "To", placeholder: "Mumbai"},
			field{label: "Date (YYYY-MM-DD)", placeholder: "2026-04-01", limit: 10},
		),
		filterForm: newForm(
			field{label: "Operator contains", placeholder: "express"},
			field{label: "Min price", limit: 8},
			field{label: "Max price", limit: 8},
		),
	}
}

func (p *searchPage) Init() tea.Cmd { return nil }

// runSearch validates and issues the backend query. Validation failures
// show inline and never produce a request.
func (p *searchPage) runSearch() tea.Cmd {
	q := search.Query{
		Source:      p.query.value(0),
		Destination: p.query.value(1),
		Date:        p.query.value(2),
	}
	if err := q.Validate(); err != nil {
		p.errText = err.Error()
		return nil
	}

	p.busy = true
	p.errText = ""
	client := p.deps.client
	timeout := p.deps.cfg.API.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		trips, err := client.SearchTrips(ctx, q.Source, q.Destination, q.Date)
		if err == nil {
			return searchResultMsg{result: search.Result{Trips: trips, Origin: search.SourceLive}}
		}
		if api.IsUnavailable(err) {
			// Backend down: show the built-in timetable, clearly marked.
			logging.Warn().Err(err).Msg("search fell back to sample data")
			return searchResultMsg{result: search.Result{Trips: search.SampleTrips(q), Origin: search.SourceSample}}
		}
		return searchResultMsg{err: err}
	}
}

// filter assembles the active Filter from the cycle keys and the form.
func (p *searchPage) filter() search.Filter {
	f := search.Filter{
		BusType:   busTypeCycle[p.busType],
		Departure: bucketCycle[p.bucket],
		Operator:  p.filterForm.value(0),
	}
	if v, err := strconv.ParseFloat(p.filterForm.value(1), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(p.filterForm.value(2), 64); err == nil {
		f.MaxPrice = &v
	}
	return f
}

// rebuildTable re-applies the filters to the fetched set.
func (p *searchPage) rebuildTable() {
	if p.fetched == nil {
		return
	}
	trips := p.filter().Apply(p.fetched.Trips)

	rows := make([]table.Row, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, table.Row{
			strconv.FormatInt(t.ID, 10),
			t.Bus.OperatorName,
			t.Bus.BusType,
			t.DepartureTime.Format("03:04 PM"),
			t.ArrivalTime.Format("03:04 PM"),
			fmt.Sprintf("%.2f", t.EffectiveFare()),
		})
	}

	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Operator", Width: 18},
		{Title: "Type", Width: 10},
		{Title: "Departs", Width: 9},
		{Title: "Arrives", Width: 9},
		{Title: "Fare", Width: 8},
	}
	p.results = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	p.haveTable = true
}

// selectedTrip finds the trip behind the highlighted row.
func (p *searchPage) selectedTrip() *models.Trip {
	if !p.haveTable || p.fetched == nil {
		return nil
	}
	row := p.results.SelectedRow()
	if row == nil {
		return nil
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return nil
	}
	for i := range p.fetched.Trips {
		if p.fetched.Trips[i].ID == id {
			return &p.fetched.Trips[i]
		}
	}
	return nil
}

func (p *searchPage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultMsg:
		p.busy = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		result := msg.result
		p.fetched = &result
		p.rebuildTable()
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.filtering {
		cmd, _ := p.filterForm.update(msg)
		return p, cmd
	}
	cmd, _ := p.query.update(msg)
	return p, cmd
}

func (p *searchPage) handleKey(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	if p.filtering {
		switch msg.String() {
		case "enter", "esc":
			p.filtering = false
			p.rebuildTable()
			return p, nil
		}
		cmd, _ := p.filterForm.update(msg)
		return p, cmd
	}

	switch msg.String() {
	case "enter":
		if p.haveTable {
			if trip := p.selectedTrip(); trip != nil {
				// Booking a sample trip would only fail on submit.
				if p.fetched.Degraded() {
					p.errText = "Sample results cannot be booked while the backend is offline."
					return p, nil
				}
				t := *trip
				return p, func() tea.Msg { return navigateMsg{page: PageWizard, payload: t} }
			}
		}
		if p.busy {
			return p, nil
		}
		return p, p.runSearch()

	case "ctrl+t":
		if p.haveTable {
			p.busType = (p.busType + 1) % len(busTypeCycle)
			p.rebuildTable()
		}
		return p, nil

	case "ctrl+b":
		if p.haveTable {
			p.bucket = (p.bucket + 1) % len(bucketCycle)
			p.rebuildTable()
		}
		return p, nil

	case "ctrl+f":
		if p.haveTable {
			p.filtering = true
		}
		return p, nil

	case "up", "down":
		// With results on screen the arrows drive the table; the query
		// form keeps tab/shift-tab.
		if p.haveTable {
			var cmd tea.Cmd
			p.results, cmd = p.results.Update(msg)
			return p, cmd
		}

	case "esc":
		return p, func() tea.Msg { return navigateMsg{page: PageHome} }
	}

	cmd, _ := p.query.update(msg)
	return p, cmd
}

func (p *searchPage) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Search trips"))
	b.WriteString("\n\n")
	b.WriteString(p.query.view())

	if p.busy {
		b.WriteString("\n" + labelStyle.Render("Searching..."))
	}
	if p.errText != "" {
		b.WriteString("\n" + errorStyle.Render(p.errText))
	}

	if p.fetched != nil {
		b.WriteString("\n")
		if p.fetched.Degraded() {
			b.WriteString(degradedStyle.Render("OFFLINE: showing sample timetable"))
			b.WriteString("\n")
		}
		if p.haveTable {
			b.WriteString(p.results.View())
			b.WriteString("\n")
			b.WriteString(labelStyle.Render(p.filterSummary()))
		}
	}

	if p.filtering {
		b.WriteString("\n\n")
		b.WriteString(headerStyle.Render("Filters"))
		b.WriteString("\n")
		b.WriteString(p.filterForm.view())
		b.WriteString(helpStyle.Render("enter: apply  esc: close"))
	} else {
		b.WriteString("\n")
		help := "enter: search  esc: back"
		if p.haveTable {
			help = "enter: book selected  ctrl+t: bus type  ctrl+b: departure  ctrl+f: filters  esc: back"
		}
		b.WriteString(helpStyle.Render(help))
	}
	return b.String()
}

// filterSummary describes the active filters under the table.
func (p *searchPage) filterSummary() string {
	f := p.filter()
	if !f.Active() {
		return "no filters"
	}
	parts := []string{}
	if f.BusType != "" {
		parts = append(parts, "type="+f.BusType)
	}
	if f.Departure != "" {
		parts = append(parts, "departs="+f.Departure)
	}
	if f.Operator != "" {
		parts = append(parts, "operator~"+f.Operator)
	}
	if f.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("min=%.0f", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("max=%.0f", *f.MaxPrice))
	}
	return "filters: " + strings.Join(parts, " ")
}
