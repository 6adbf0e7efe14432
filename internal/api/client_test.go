// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/busdesk/busdesk/internal/models"
)

// fakeTokens is a TokenSource for tests.
type fakeTokens struct {
	token  string
	clears int32
}

func (f *fakeTokens) Token() string { return f.token }

func (f *fakeTokens) Clear() error {
	f.token = ""
	atomic.AddInt32(&f.clears, 1)
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, tokens *fakeTokens, onUnauthorized func()) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Options{
		BaseURL:        srv.URL,
		Timeout:        5 * time.Second,
		Tokens:         tokens,
		OnUnauthorized: onUnauthorized,
	})
}

// ===== Bearer token injection =====

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	c := newTestClient(t, handler, &fakeTokens{token: "tok-123"}, nil)
	if _, err := c.ListBuses(context.Background()); err != nil {
		t.Fatalf("ListBuses() error = %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})

	c := newTestClient(t, handler, &fakeTokens{}, nil)
	if _, err := c.ListBuses(context.Background()); err != nil {
		t.Fatalf("ListBuses() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

// ===== Unauthorized interceptor =====

func TestClient_UnauthorizedClearsSessionOnce(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	})

	tokens := &fakeTokens{token: "stale"}
	var hookCalls int32
	c := newTestClient(t, handler, tokens, func() {
		atomic.AddInt32(&hookCalls, 1)
		// Session must already be cleared when navigation fires.
		if tokens.Token() != "" {
			t.Error("hook ran before session was cleared")
		}
	})

	_, err := c.MyBookings(context.Background())
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}
	if got := atomic.LoadInt32(&tokens.clears); got != 1 {
		t.Errorf("Clear() called %d times, want exactly 1", got)
	}
	if got := atomic.LoadInt32(&hookCalls); got != 1 {
		t.Errorf("unauthorized hook called %d times, want exactly 1", got)
	}
}

func TestClient_ForbiddenAlsoIntercepted(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	tokens := &fakeTokens{token: "customer"}
	c := newTestClient(t, handler, tokens, nil)

	err := c.DeleteBus(context.Background(), 1)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if tokens.Token() != "" {
		t.Error("403 should clear the stored token")
	}
}

// ===== Error decoding =====

func TestClient_DecodesErrorBodies(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", http.StatusConflict, `{"error":"seat already booked"}`, "seat already booked"},
		{"message field", http.StatusBadRequest, `{"message":"invalid trip"}`, "invalid trip"},
		{"empty body falls back", http.StatusInternalServerError, ``, genericErrorMessage},
		{"unparseable body falls back", http.StatusBadGateway, `<html>`, genericErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			c := newTestClient(t, handler, &fakeTokens{}, nil)
			_, err := c.ListTrips(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			apiErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClient_UnavailableOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close() // nothing listening anymore

	c := NewClient(Options{
		BaseURL: baseURL,
		Timeout: time.Second,
		Tokens:  &fakeTokens{},
	})

	_, err := c.ListTrips(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !IsUnavailable(err) {
		t.Errorf("IsUnavailable(%v) = false, want true", err)
	}
}

func TestClient_BackendErrorIsNotUnavailable(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"seat already booked"}`))
	})

	c := newTestClient(t, handler, &fakeTokens{}, nil)
	_, err := c.CreateBooking(context.Background(), models.CreateBookingRequest{TripID: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if IsUnavailable(err) {
		t.Errorf("a decoded backend error should not count as unavailable")
	}
}

// ===== Request and response plumbing =====

func TestClient_CreateBookingPayload(t *testing.T) {
	var gotBody []byte
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"status":"CONFIRMED","totalAmount":100}`))
	})

	c := newTestClient(t, handler, &fakeTokens{token: "tok"}, nil)
	booking, err := c.CreateBooking(context.Background(), models.CreateBookingRequest{
		TripID:  3,
		SeatIDs: []int64{10, 11},
		PaymentMethod: models.PaymentMethod{
			Type:  models.PaymentMethodUPI,
			UPIID: "asha@okbank",
		},
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	if booking.ID != 42 || booking.Status != models.BookingStatusConfirmed {
		t.Errorf("unexpected booking: %+v", booking)
	}
	for _, want := range []string{`"tripId":3`, `"seatIds":[10,11]`, `"upiId":"asha@okbank"`} {
		if !strings.Contains(string(gotBody), want) {
			t.Errorf("request body %s missing %s", gotBody, want)
		}
	}
}

func TestClient_SearchTripsQuery(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})

	c := newTestClient(t, handler, &fakeTokens{}, nil)
	if _, err := c.SearchTrips(context.Background(), "Pune", "Mumbai", "2026-04-01"); err != nil {
		t.Fatalf("SearchTrips() error = %v", err)
	}
	for _, want := range []string{"source=Pune", "destination=Mumbai", "date=2026-04-01"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestClient_ValidateTokenPostsTokenBody(t *testing.T) {
	var gotBody string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte("false"))
	})

	c := newTestClient(t, handler, &fakeTokens{token: "tok-123"}, nil)
	valid, err := c.ValidateToken(context.Background())
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if valid {
		t.Error("ValidateToken() = true, want the backend's false verdict")
	}
	if !strings.Contains(gotBody, `"token":"tok-123"`) {
		t.Errorf("request body %q missing token field", gotBody)
	}
}

// ===== Endpoint routing =====

func TestClient_TripAndPaymentEndpoints(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /trips/5":
			_, _ = w.Write([]byte(`{"id":5,"fare":42}`))
		case "POST /payments":
			_, _ = w.Write([]byte(`{"id":3,"bookingId":7,"amount":42,"status":"SUCCESS"}`))
		case "GET /payments/all":
			_, _ = w.Write([]byte(`[{"id":3},{"id":4}]`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	c := newTestClient(t, handler, &fakeTokens{token: "tok"}, nil)
	ctx := context.Background()

	trip, err := c.GetTrip(ctx, 5)
	if err != nil {
		t.Fatalf("GetTrip() error = %v", err)
	}
	if trip.ID != 5 || trip.Fare != 42 {
		t.Errorf("GetTrip() = %+v, want id 5 fare 42", trip)
	}

	payment, err := c.CreatePayment(ctx, models.PaymentRequest{BookingID: 7, Amount: 42})
	if err != nil {
		t.Fatalf("CreatePayment() error = %v", err)
	}
	if payment.BookingID != 7 || payment.Status != "SUCCESS" {
		t.Errorf("CreatePayment() = %+v, want booking 7 SUCCESS", payment)
	}

	all, err := c.AllPayments(ctx)
	if err != nil {
		t.Fatalf("AllPayments() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("AllPayments() returned %d payments, want 2", len(all))
	}
}

func TestClient_DeleteNoContent(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	c := newTestClient(t, handler, &fakeTokens{token: "tok"}, nil)
	if err := c.CancelBooking(context.Background(), 7); err != nil {
		t.Fatalf("CancelBooking() error = %v", err)
	}
}
