// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

// Package ticket renders a confirmed booking into a printable PDF
// e-ticket and saves it under the configured ticket directory.
package ticket

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/busdesk/busdesk/internal/models"
)

// Render produces the e-ticket PDF bytes and a suggested filename for a
// booking. Bookings in any status render; callers decide when to offer
// the download.
func Render(b *models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus E-Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	seatNumbers := make([]string, 0, len(b.Seats))
	for _, s := range b.Seats {
		seatNumbers = append(seatNumbers, s.SeatNumber)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Ref   : #%d", b.ID),
		fmt.Sprintf("Status        : %s", safe(b.Status, "-")),
		fmt.Sprintf("Route         : %s -> %s", safe(b.Trip.Route.Source, "-"), safe(b.Trip.Route.Destination, "-")),
		fmt.Sprintf("Operator      : %s", safe(b.Trip.Bus.OperatorName, "-")),
		fmt.Sprintf("Bus           : %s (%s)", safe(b.Trip.Bus.BusNumber, "-"), safe(b.Trip.Bus.BusType, "-")),
		fmt.Sprintf("Departure     : %s", b.Trip.DepartureTime.Format("Mon, 02 Jan 2006 03:04 PM")),
		fmt.Sprintf("Arrival       : %s", b.Trip.ArrivalTime.Format("Mon, 02 Jan 2006 03:04 PM")),
		fmt.Sprintf("Seats         : %s", safe(strings.Join(seatNumbers, ", "), "-")),
		fmt.Sprintf("Total Paid    : %.2f", b.TotalAmount),
	}
	if b.Payment != nil {
		lines = append(lines,
			fmt.Sprintf("Payment       : %s (%s)", safe(b.Payment.Method, "-"), safe(b.Payment.Status, "-")))
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please carry a valid ID and show this ticket when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render ticket: %w", err)
	}

	filename := fmt.Sprintf("TICKET_%d_%s.pdf", b.ID,
		safeFilenamePart(b.Trip.Route.Source+"_"+b.Trip.Route.Destination))
	return buf.Bytes(), filename, nil
}

// Save renders the ticket and writes it under dir, creating the
// directory if needed. Returns the full path of the written file.
func Save(dir string, b *models.Booking) (string, error) {
	data, filename, err := Render(b)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create ticket directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("failed to write ticket: %w", err)
	}
	return path, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(
		" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
