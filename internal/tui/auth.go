// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/busdesk/busdesk/internal/models"
	"github.com/busdesk/busdesk/internal/validation"
)

// ===== Login =====

type loginPage struct {
	deps    *deps
	form    *form
	busy    bool
	errText string
}

func newLoginPage(d *deps) *loginPage {
	return &loginPage{
		deps: d,
		form: newForm(
			field{label: "Email", placeholder: "you@example.com"},
			field{label: "Password", secret: true},
		),
	}
}

func (p *loginPage) Init() tea.Cmd { return nil }

func (p *loginPage) submit() tea.Cmd {
	req := models.LoginRequest{
		Email:    p.form.value(0),
		Password: p.form.value(1),
	}
	if err := validation.ValidateStruct(&req); err != nil {
		p.errText = err.First()
		return nil
	}

	p.busy = true
	p.errText = ""
	client := p.deps.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), p.deps.cfg.API.Timeout)
		defer cancel()
		resp, err := client.Login(ctx, req)
		return authResultMsg{resp: resp, err: err}
	}
}

func (p *loginPage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		p.busy = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		if err := p.deps.session.Login(msg.resp.Token, msg.resp.ToUser()); err != nil {
			p.errText = "Failed to store session: " + err.Error()
			return p, nil
		}
		return p, func() tea.Msg { return navigateMsg{page: PageDashboard} }

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if p.busy {
				return p, nil
			}
			return p, p.submit()
		case "esc":
			return p, func() tea.Msg { return navigateMsg{page: PageHome} }
		}
	}

	cmd, _ := p.form.update(msg)
	return p, cmd
}

func (p *loginPage) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Log in"))
	b.WriteString("\n\n")
	b.WriteString(p.form.view())
	if p.busy {
		b.WriteString("\n" + labelStyle.Render("Signing in..."))
	}
	if p.errText != "" {
		b.WriteString("\n" + errorStyle.Render(p.errText))
	}
	b.WriteString("\n\n" + helpStyle.Render("enter: sign in  tab: next field  esc: back"))
	return boxStyle.Render(b.String())
}

// ===== Register =====

type registerPage struct {
	deps    *deps
	form    *form
	busy    bool
	errText string
}

func newRegisterPage(d *deps) *registerPage {
	return &registerPage{
		deps: d,
		form: newForm(
			field{label: "Name", placeholder: "Full name"},
			field{label: "Email", placeholder: "you@example.com"},
			field{label: "Phone", placeholder: "9876543210", limit: 15},
			field{label: "Password", secret: true},
		),
	}
}

func (p *registerPage) Init() tea.Cmd { return nil }

func (p *registerPage) submit() tea.Cmd {
	req := models.RegisterRequest{
		Name:     p.form.value(0),
		Email:    p.form.value(1),
		Phone:    p.form.value(2),
		Password: p.form.value(3),
		Role:     models.RoleCustomer,
	}
	if err := validation.ValidateStruct(&req); err != nil {
		p.errText = err.First()
		return nil
	}

	p.busy = true
	p.errText = ""
	client := p.deps.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), p.deps.cfg.API.Timeout)
		defer cancel()
		resp, err := client.Register(ctx, req)
		return authResultMsg{resp: resp, err: err}
	}
}

func (p *registerPage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		p.busy = false
		if msg.err != nil {
			p.errText = msg.err.Error()
			return p, nil
		}
		// Registration doubles as login.
		if err := p.deps.session.Login(msg.resp.Token, msg.resp.ToUser()); err != nil {
			p.errText = "Failed to store session: " + err.Error()
			return p, nil
		}
		return p, func() tea.Msg { return navigateMsg{page: PageDashboard} }

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if p.busy {
				return p, nil
			}
			return p, p.submit()
		case "esc":
			return p, func() tea.Msg { return navigateMsg{page: PageHome} }
		}
	}

	cmd, _ := p.form.update(msg)
	return p, cmd
}

func (p *registerPage) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Create an account"))
	b.WriteString("\n\n")
	b.WriteString(p.form.view())
	if p.busy {
		b.WriteString("\n" + labelStyle.Render("Creating account..."))
	}
	if p.errText != "" {
		b.WriteString("\n" + errorStyle.Render(p.errText))
	}
	b.WriteString("\n\n" + helpStyle.Render("enter: register  tab: next field  esc: back"))
	return boxStyle.Render(b.String())
}
