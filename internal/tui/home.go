// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// menuEntry is one line of the home menu.
type menuEntry struct {
	label string
	page  Page

	// visible decides whether the entry shows for the current session.
	visible func(d *deps) bool
}

var menuEntries = []menuEntry{
	{label: "Search trips", page: PageSearch, visible: func(d *deps) bool { return true }},
	{label: "My bookings", page: PageDashboard, visible: func(d *deps) bool { return d.session.IsAuthenticated() }},
	{label: "Admin console", page: PageAdmin, visible: func(d *deps) bool { return d.session.IsAdmin() }},
	{label: "Log in", page: PageLogin, visible: func(d *deps) bool { return !d.session.IsAuthenticated() }},
	{label: "Register", page: PageRegister, visible: func(d *deps) bool { return !d.session.IsAuthenticated() }},
}

// homePage is the landing menu.
type homePage struct {
	deps    *deps
	entries []menuEntry
	cursor  int
	status  string
}

func newHomePage(d *deps) *homePage {
	entries := make([]menuEntry, 0, len(menuEntries))
	for _, e := range menuEntries {
		if e.visible(d) {
			entries = append(entries, e)
		}
	}
	return &homePage{deps: d, entries: entries}
}

func (h *homePage) Init() tea.Cmd { return nil }

func (h *homePage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if h.cursor > 0 {
			h.cursor--
		}
	case "down", "j":
		if h.cursor < len(h.entries)-1 {
			h.cursor++
		}
	case "enter":
		target := h.entries[h.cursor].page
		return h, func() tea.Msg { return navigateMsg{page: target} }
	case "l":
		if h.deps.session.IsAuthenticated() {
			if err := h.deps.session.Logout(); err != nil {
				h.status = "Logout failed: " + err.Error()
				return h, nil
			}
			return h, func() tea.Msg { return navigateMsg{page: PageHome} }
		}
	case "q":
		return h, tea.Quit
	}
	return h, nil
}

func (h *homePage) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Where to today?"))
	b.WriteString("\n\n")

	for i, entry := range h.entries {
		line := "  " + entry.label
		if i == h.cursor {
			line = selectedStyle.Render("> " + entry.label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if h.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(h.status))
	}

	b.WriteString("\n")
	help := "up/down: move  enter: open  q: quit"
	if h.deps.session.IsAuthenticated() {
		help += "  l: log out"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}
