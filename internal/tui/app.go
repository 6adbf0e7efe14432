// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

// Package tui is the terminal front end. It runs the whole client on
// bubbletea's single event loop: every backend call is issued as an
// asynchronous command whose result returns to the loop as a typed
// message, so page logic never runs concurrently with itself and the
// only shared mutable state is the session store.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/busdesk/busdesk/internal/api"
	"github.com/busdesk/busdesk/internal/config"
	"github.com/busdesk/busdesk/internal/guard"
	"github.com/busdesk/busdesk/internal/logging"
	"github.com/busdesk/busdesk/internal/session"
)

// Page identifies one screen of the client.
type Page int

const (
	PageHome Page = iota
	PageLogin
	PageRegister
	PageSearch
	PageWizard
	PageDashboard
	PageAdmin
)

// pageRequirement maps each page to what the route guard demands.
func pageRequirement(p Page) guard.Requirement {
	switch p {
	case PageWizard, PageDashboard:
		return guard.Requirement{Auth: true}
	case PageAdmin:
		return guard.Requirement{Auth: true, Admin: true}
	default:
		return guard.Requirement{}
	}
}

// guardTimeout bounds the token-validity check a navigation may issue.
const guardTimeout = 10 * time.Second

// deps bundles what every page needs.
type deps struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Store
	guard   *guard.Guard
}

// pageModel is the contract each screen implements. It mirrors
// tea.Model except Update returns a pageModel, keeping page swaps
// inside the app.
type pageModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (pageModel, tea.Cmd)
	View() string
}

// App is the root bubbletea model: it owns the current page, routes
// navigation through the guard, and handles the forced logout message.
type App struct {
	deps   *deps
	page   Page
	model  pageModel
	width  int
	height int

	// notice is a one-line banner shown above the page, e.g. after a
	// forced logout.
	notice string
}

// NewApp builds the root model starting at the home page.
func NewApp(cfg *config.Config, client *api.Client, store *session.Store) *App {
	d := &deps{
		cfg:     cfg,
		client:  client,
		session: store,
		guard:   guard.New(store, client),
	}
	return &App{
		deps:  d,
		page:  PageHome,
		model: newHomePage(d),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.model.Init()
}

// navigate runs the guard for the target page off the event loop and
// reports back with a navReadyMsg.
func (a *App) navigate(page Page, payload interface{}) tea.Cmd {
	g := a.deps.guard
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), guardTimeout)
		defer cancel()
		decision := g.Evaluate(ctx, pageRequirement(page))
		return navReadyMsg{page: page, payload: payload, decision: decision}
	}
}

// open swaps in the model for a page the guard already cleared.
func (a *App) open(page Page, payload interface{}) tea.Cmd {
	a.page = page
	switch page {
	case PageLogin:
		a.model = newLoginPage(a.deps)
	case PageRegister:
		a.model = newRegisterPage(a.deps)
	case PageSearch:
		a.model = newSearchPage(a.deps)
	case PageWizard:
		a.model = newWizardPage(a.deps, payload)
	case PageDashboard:
		a.model = newDashboardPage(a.deps)
	case PageAdmin:
		a.model = newAdminPage(a.deps)
	default:
		a.page = PageHome
		a.model = newHomePage(a.deps)
	}
	return a.model.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case navigateMsg:
		a.notice = ""
		return a, a.navigate(msg.page, msg.payload)

	case navReadyMsg:
		switch msg.decision {
		case guard.Authorized:
			return a, a.open(msg.page, msg.payload)
		case guard.RedirectLogin:
			a.notice = "Please log in to continue."
			return a, a.open(PageLogin, nil)
		case guard.RedirectFallback:
			a.notice = "That page needs an admin account."
			return a, a.open(PageDashboard, nil)
		}
		return a, nil

	case unauthorizedMsg:
		// The gateway client has already cleared the session. One of
		// these arrives per failing request; when several requests fail
		// together the redirect must not repeat, or the later messages
		// would wipe whatever the user has started typing.
		logging.Info().Msg("forced logout, returning to login page")
		a.notice = "Your session has expired. Please log in again."
		if a.page == PageLogin {
			return a, nil
		}
		return a, a.open(PageLogin, nil)
	}

	model, cmd := a.model.Update(msg)
	a.model = model
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	header := titleStyle.Render("Busdesk") + "  " + a.statusLine()
	body := a.model.View()

	if a.notice != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			errorStyle.Render(a.notice),
			"",
			body,
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

// statusLine shows who is logged in.
func (a *App) statusLine() string {
	user := a.deps.session.Current()
	if user == nil {
		return labelStyle.Render("not signed in")
	}
	line := user.Name + " (" + user.Role + ")"
	return labelStyle.Render(line)
}
