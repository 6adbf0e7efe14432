// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package session

import (
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/golang-jwt/jwt/v5"

	"github.com/busdesk/busdesk/internal/models"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	if err != nil {
		t.Fatalf("failed to open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

// ===== Login / Logout =====

func TestStore_LoginLogout(t *testing.T) {
	s := NewStore(openTestDB(t))

	if s.IsAuthenticated() {
		t.Fatal("fresh store should not be authenticated")
	}

	user := models.User{ID: 1, Name: "Asha", Email: "asha@example.com", Role: models.RoleCustomer}
	if err := s.Login("tok-abc", user); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if !s.IsAuthenticated() {
		t.Error("expected authenticated after login")
	}
	if s.Token() != "tok-abc" {
		t.Errorf("Token() = %q, want tok-abc", s.Token())
	}
	if got := s.Current(); got == nil || got.Email != "asha@example.com" {
		t.Errorf("Current() = %+v", got)
	}
	if s.IsAdmin() {
		t.Error("customer should not be admin")
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if s.IsAuthenticated() || s.Current() != nil {
		t.Error("expected empty session after logout")
	}
}

func TestStore_IsAdmin(t *testing.T) {
	s := NewStore(openTestDB(t))
	admin := models.User{ID: 2, Name: "Ravi", Role: models.RoleAdmin}
	if err := s.Login("tok", admin); err != nil {
		t.Fatal(err)
	}
	if !s.IsAdmin() {
		t.Error("expected IsAdmin for ADMIN role")
	}
}

// ===== Persistence =====

func TestStore_RestoreAcrossInstances(t *testing.T) {
	db := openTestDB(t)

	first := NewStore(db)
	tok := signedToken(t, time.Now().Add(time.Hour))
	user := models.User{ID: 1, Name: "Asha", Email: "asha@example.com", Role: models.RoleCustomer}
	if err := first.Login(tok, user); err != nil {
		t.Fatal(err)
	}

	second := NewStore(db)
	if err := second.Restore(); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if second.Token() != tok {
		t.Error("restored token differs")
	}
	if got := second.Current(); got == nil || got.Name != "Asha" {
		t.Errorf("restored user = %+v", got)
	}
}

func TestStore_RestoreEmpty(t *testing.T) {
	s := NewStore(openTestDB(t))
	if err := s.Restore(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Restore() on empty store = %v, want ErrNoSession", err)
	}
}

func TestStore_RestoreDiscardsExpiredToken(t *testing.T) {
	db := openTestDB(t)

	first := NewStore(db)
	stale := signedToken(t, time.Now().Add(-time.Hour))
	if err := first.Login(stale, models.User{ID: 1, Name: "Asha"}); err != nil {
		t.Fatal(err)
	}

	second := NewStore(db)
	if err := second.Restore(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Restore() with expired token = %v, want ErrNoSession", err)
	}
	if second.IsAuthenticated() {
		t.Error("expired session must not authenticate")
	}

	// The expired session is also purged from disk.
	third := NewStore(db)
	if err := third.Restore(); !errors.Is(err, ErrNoSession) {
		t.Errorf("second Restore() = %v, want ErrNoSession", err)
	}
}

// ===== Clear =====

func TestStore_ClearIsIdempotent(t *testing.T) {
	s := NewStore(openTestDB(t))
	if err := s.Login("tok", models.User{ID: 1}); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear() error = %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("expected cleared session")
	}
}

// ===== Token expiry =====

func TestTokenExpiredAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"future exp", signedToken(t, now.Add(time.Hour)), false},
		{"past exp", signedToken(t, now.Add(-time.Hour)), true},
		{"opaque token", "not-a-jwt", false},
		{"empty token", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenExpiredAt(tt.token, now); got != tt.want {
				t.Errorf("tokenExpiredAt() = %v, want %v", got, tt.want)
			}
		})
	}
}
