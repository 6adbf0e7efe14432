// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package models

import (
	"fmt"
	"strings"
	"time"
)

// Payment method type constants.
const (
	PaymentMethodCard   = "card"
	PaymentMethodUPI    = "upi"
	PaymentMethodWallet = "wallet"
)

// Payment status constants as the backend reports them.
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusSuccess  = "SUCCESS"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

// PaymentMethod is a tagged union over the supported payment types.
// Only the fields for the active Type are populated and validated;
// the rest are omitted from the wire payload.
type PaymentMethod struct {
	Type string `json:"type"`

	// card
	CardNumber     string `json:"cardNumber,omitempty"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
	CVV            string `json:"cvv,omitempty"`
	CardholderName string `json:"cardholderName,omitempty"`

	// upi
	UPIID string `json:"upiId,omitempty"`

	// wallet
	WalletType string `json:"walletType,omitempty"`
}

// RequiredFields returns the field values that must be non-empty for the
// active payment type, keyed by display label.
func (m *PaymentMethod) RequiredFields() map[string]string {
	switch m.Type {
	case PaymentMethodCard:
		return map[string]string{
			"card number":     m.CardNumber,
			"expiry date":     m.ExpiryDate,
			"cvv":             m.CVV,
			"cardholder name": m.CardholderName,
		}
	case PaymentMethodUPI:
		return map[string]string{"upi id": m.UPIID}
	case PaymentMethodWallet:
		return map[string]string{"wallet type": m.WalletType}
	default:
		return nil
	}
}

// Validate checks that the method type is known and every field the
// active type requires is non-empty after trimming.
func (m *PaymentMethod) Validate() error {
	fields := m.RequiredFields()
	if fields == nil {
		return fmt.Errorf("unknown payment method %q", m.Type)
	}
	for label, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", label)
		}
	}
	return nil
}

// Payment is a backend-owned payment record attached to a booking.
type Payment struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"bookingId"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId,omitempty"`
	PaymentTime   time.Time `json:"paymentTime"`
}

// PaymentRequest is the payload for POST /payments.
type PaymentRequest struct {
	BookingID int64   `json:"bookingId" validate:"required"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	Method    string  `json:"paymentMethod" validate:"required,oneof=card upi wallet"`
}
