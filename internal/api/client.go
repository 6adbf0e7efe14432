// Busdesk - Terminal Bus Ticket Reservation Client
// Copyright 2026 The Busdesk Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/busdesk/busdesk

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/busdesk/busdesk/internal/logging"
)

// TokenSource supplies the bearer token for outgoing requests and clears
// the stored session when the backend rejects it. Implemented by the
// session store.
type TokenSource interface {
	Token() string
	Clear() error
}

// Options configures a Client.
type Options struct {
	// BaseURL is the backend root, e.g. "http://localhost:8080/api/v1".
	BaseURL string

	// Timeout bounds every request. A request that never resolves must
	// not leave the UI in a perpetual loading state.
	Timeout time.Duration

	// RateLimit and RateBurst configure the client-side request limiter.
	// A RateLimit of 0 disables limiting.
	RateLimit float64
	RateBurst int

	// BreakerEnabled wraps requests in a circuit breaker so a dead
	// backend fails fast instead of burning the full timeout per call.
	BreakerEnabled bool

	// Tokens supplies and clears the session token. Required.
	Tokens TokenSource

	// OnUnauthorized runs after the session has been cleared in response
	// to a 401/403, exactly once per failing request and before the
	// caller sees the error. The UI uses it to force navigation to the
	// login page. Optional.
	OnUnauthorized func()
}

// Client handles communication with the reservation backend.
//
// Thread Safety: safe for concurrent use. Each request creates its own
// HTTP request; the limiter and breaker are internally synchronized.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	limiter        *rate.Limiter
	cb             *gobreaker.CircuitBreaker[*http.Response]
	onUnauthorized func()
}

// NewClient creates a gateway client from the provided options.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL:        opts.BaseURL,
		httpClient:     &http.Client{Timeout: timeout},
		tokens:         opts.Tokens,
		onUnauthorized: opts.OnUnauthorized,
	}

	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	if opts.BreakerEnabled {
		c.cb = newBreaker()
	}

	return c
}

// newBreaker builds the backend circuit breaker.
// Opens after 60% transport failure rate with minimum 5 requests,
// stays open for 30 seconds, then allows 2 probe requests.
func newBreaker() *gobreaker.CircuitBreaker[*http.Response] {
	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "reservation-api",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
		},
	})
}

// do performs one request against the backend: waits on the rate
// limiter, attaches the bearer token, executes through the circuit
// breaker, intercepts 401/403, and decodes a JSON response into out.
// Pass a nil out to discard the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// Session-clearing runs before the caller sees the error, so a
		// page-level handler can never race the forced logout.
		c.handleUnauthorized(method, path, resp.StatusCode)
		return decodeError(resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}

	return nil
}

// roundTrip executes the request, through the circuit breaker when one
// is configured. Only transport failures count against the breaker; an
// HTTP error status still proves the backend is reachable.
func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	if c.cb == nil {
		return c.httpClient.Do(req)
	}
	return c.cb.Execute(func() (*http.Response, error) {
		return c.httpClient.Do(req)
	})
}

// handleUnauthorized clears the stored session and fires the
// unauthorized hook. Called exactly once per failing request.
func (c *Client) handleUnauthorized(method, path string, status int) {
	logging.Warn().
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Msg("backend rejected session, clearing credentials")

	if err := c.tokens.Clear(); err != nil {
		logging.Error().Err(err).Msg("failed to clear stored session")
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}
