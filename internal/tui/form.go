// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of labelled text inputs with one focused
// field. Tab/shift-tab and up/down move focus.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

// field describes one form input.
type field struct {
	label       string
	placeholder string
	secret      bool
	limit       int
}

func newForm(fields ...field) *form {
	f := &form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}
	for i, spec := range fields {
		in := textinput.New()
		in.Placeholder = spec.placeholder
		if spec.secret {
			in.EchoMode = textinput.EchoPassword
		}
		if spec.limit > 0 {
			in.CharLimit = spec.limit
		}
		f.labels[i] = spec.label
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// value returns the trimmed content of field i.
func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// setValue replaces the content of field i.
func (f *form) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
}

// moveFocus shifts focus by delta, clamped to the field range.
func (f *form) moveFocus(delta int) {
	next := f.focus + delta
	if next < 0 || next >= len(f.inputs) {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = next
	f.inputs[f.focus].Focus()
}

// update routes key input to the focused field and handles focus keys.
// Returns true when the message was consumed.
func (f *form) update(msg tea.Msg) (tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.moveFocus(1)
			return nil, true
		case "shift+tab", "up":
			f.moveFocus(-1)
			return nil, true
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false
}

// view renders the labelled fields.
func (f *form) view() string {
	var b strings.Builder
	for i := range f.inputs {
		b.WriteString(labelStyle.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	return b.String()
}
