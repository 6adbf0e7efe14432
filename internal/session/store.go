// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

// Package session holds the authenticated identity and bearer token for
// the running client, persisted in BadgerDB so a session survives
// restarts. The store is updated atomically by whole-object replace:
// login and logout swap the complete session, never individual fields.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"github.com/busdesk/busdesk/internal/logging"
	"github.com/busdesk/busdesk/internal/models"
)

// Storage keys. The session occupies exactly two records.
const (
	keyToken = "token"
	keyUser  = "user"
)

// ErrNoSession is returned by Restore when no persisted session exists.
var ErrNoSession = errors.New("no stored session")

// Store is the process-wide session holder. In-memory state is the
// source of truth for reads; BadgerDB mirrors it for durability.
//
// Thread Safety: safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	db    *badger.DB
	token string
	user  *models.User
}

// NewStore creates a session store backed by the given BadgerDB handle.
// Call Restore to load any persisted session.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

// Restore loads a previously persisted session into memory. Returns
// ErrNoSession when nothing is stored. A stored token whose expiry has
// passed is discarded as if no session existed.
func (s *Store) Restore() error {
	var (
		token string
		user  models.User
	)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyToken))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSession
		}
		if err != nil {
			return fmt.Errorf("get token: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			token = string(val)
			return nil
		}); err != nil {
			return err
		}

		item, err = txn.Get([]byte(keyUser))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSession
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err != nil {
		return err
	}

	if TokenExpired(token) {
		logging.Info().Msg("stored session token has expired, discarding")
		if err := s.Clear(); err != nil {
			return err
		}
		return ErrNoSession
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	logging.Debug().Str("email", user.Email).Str("role", user.Role).Msg("session restored")
	return nil
}

// Login replaces the session with the given token and identity, in
// memory and on disk.
func (s *Store) Login(token string, user models.User) error {
	data, err := json.Marshal(&user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyToken), []byte(token)); err != nil {
			return fmt.Errorf("set token: %w", err)
		}
		if err := txn.Set([]byte(keyUser), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	return nil
}

// Logout destroys the session, in memory and on disk.
func (s *Store) Logout() error {
	return s.Clear()
}

// Clear removes the token and identity. It also satisfies the gateway
// client's TokenSource so a 401/403 interceptor can force a logout.
func (s *Store) Clear() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(keyToken)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete token: %w", err)
		}
		if err := txn.Delete([]byte(keyUser)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})

	// In-memory state clears regardless so the UI cannot keep acting on
	// rejected credentials even if the disk write failed.
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	return err
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Current returns a copy of the authenticated identity, or nil.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsAdmin reports whether the current identity holds the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}
