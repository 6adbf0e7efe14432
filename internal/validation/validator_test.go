// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package validation

import (
	"strings"
	"testing"
	"time"
)

// ===== ValidateStruct =====

type passengerForm struct {
	Name string `validate:"required,min=1,max=100"`
	Age  int    `validate:"min=1,max=100"`
}

func TestValidateStruct_Passenger(t *testing.T) {
	tests := []struct {
		name    string
		form    passengerForm
		wantOK  bool
		wantMsg string
	}{
		{
			name:   "valid passenger",
			form:   passengerForm{Name: "Asha Rao", Age: 34},
			wantOK: true,
		},
		{
			name:    "missing name",
			form:    passengerForm{Name: "", Age: 34},
			wantMsg: "Name is required",
		},
		{
			name:    "age zero",
			form:    passengerForm{Name: "Asha Rao", Age: 0},
			wantMsg: "Age must be at least 1",
		},
		{
			name:    "age over limit",
			form:    passengerForm{Name: "Asha Rao", Age: 101},
			wantMsg: "Age must be at most 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.form)
			if tt.wantOK {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

type cardForm struct {
	CardNumber string `validate:"required,numeric,len=16"`
	ExpiryDate string `validate:"required,expiry"`
	CVV        string `validate:"required,numeric,min=3,max=4"`
}

func TestValidateStruct_CardExpiry(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).Format("01/06")
	past := time.Now().AddDate(-1, 0, 0).Format("01/06")

	tests := []struct {
		name   string
		form   cardForm
		wantOK bool
	}{
		{
			name:   "valid card",
			form:   cardForm{CardNumber: "4111111111111111", ExpiryDate: future, CVV: "123"},
			wantOK: true,
		},
		{
			name: "expired card",
			form: cardForm{CardNumber: "4111111111111111", ExpiryDate: past, CVV: "123"},
		},
		{
			name: "malformed expiry",
			form: cardForm{CardNumber: "4111111111111111", ExpiryDate: "13/99x", CVV: "123"},
		},
		{
			name: "non-numeric card number",
			form: cardForm{CardNumber: "4111-1111-1111-11", ExpiryDate: future, CVV: "123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.form)
			if tt.wantOK && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.wantOK && err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

// ===== Custom validators =====

type departureForm struct {
	Time string `validate:"required,clock12"`
}

func TestValidateStruct_Clock12(t *testing.T) {
	tests := []struct {
		value  string
		wantOK bool
	}{
		{"06:00 AM", true},
		{"11:45 PM", true},
		{"08:30 am", true},
		{"14:00", false},
		{"25:00 AM", false},
		{"morning", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateStruct(&departureForm{Time: tt.value})
			if tt.wantOK && err != nil {
				t.Errorf("expected %q to be valid, got %v", tt.value, err)
			}
			if !tt.wantOK && err == nil {
				t.Errorf("expected %q to be rejected", tt.value)
			}
		})
	}
}

// ===== Errors =====

func TestErrors_First(t *testing.T) {
	err := ValidateStruct(&passengerForm{Name: "", Age: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Fields()) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Fields()))
	}
	if err.First() != "Name is required" {
		t.Errorf("unexpected first error: %q", err.First())
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("combined error should join messages: %q", err.Error())
	}
}

func TestErrors_Empty(t *testing.T) {
	ve := &Errors{}
	if ve.Error() != "validation failed" {
		t.Errorf("unexpected empty error message: %q", ve.Error())
	}
	if ve.First() != "" {
		t.Errorf("First on empty Errors should be empty, got %q", ve.First())
	}
}
