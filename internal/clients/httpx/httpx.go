// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package httpx provides the shared outbound HTTP client used by every
// upstream provider client. Each Client carries its own circuit breaker
// and an optional request pacer so a misbehaving upstream cannot
// exhaust the process or trip unrelated providers.
package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelharbor/internal/logging"
	"github.com/tomtom215/reelharbor/internal/metrics"
)

// maxResponseBytes caps upstream response bodies. The largest legitimate
// payload (a TMDB discover page) is well under 1MB.
const maxResponseBytes = 4 << 20

// StatusError is returned when an upstream responds with a non-2xx status.
// The body is retained (truncated) so callers can inspect upstream error
// payloads, and the status lets callers react to specific codes such as 429.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}

// Options configures a Client.
type Options struct {
	// Name identifies the client in logs and circuit breaker metrics.
	Name string
	// Timeout bounds each individual request.
	Timeout time.Duration
	// Limiter, when non-nil, paces outbound requests. Waiting respects
	// the request context.
	Limiter *rate.Limiter
}

// Client wraps http.Client with circuit breaker protection and optional
// request pacing. All provider clients go through this type.
//
// The circuit breaker uses real time (via sony/gobreaker) for its interval
// and timeout calculations. Tests should mock at the provider-client level
// rather than trying to drive the breaker clock.
type Client struct {
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]byte]
	limiter *rate.Limiter
	name    string
}

// New creates a Client with a dedicated circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 30 second timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
//
// Only transport errors and 5xx responses count as breaker failures.
// Client errors (4xx) reflect our request or quota, not upstream health,
// and must not hold the circuit open.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(opts.Name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Str("client", opts.Name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().
				Str("client", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},

		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				return se.Status < 500
			}
			return false
		},
	})

	return &Client{
		http:    &http.Client{Timeout: timeout},
		cb:      cb,
		limiter: opts.Limiter,
		name:    opts.Name,
	}
}

// GetJSON performs a GET request and decodes the JSON response into out.
// A non-2xx response returns *StatusError.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, url, headers, nil, out)
}

// PostJSON marshals body as JSON, performs a POST request, and decodes the
// JSON response into out. A non-2xx response returns *StatusError.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, url, headers, payload, out)
}

func (c *Client) doJSON(ctx context.Context, method, url string, headers map[string]string, body []byte, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for request slot: %w", err)
		}
	}

	data, err := c.cb.Execute(func() ([]byte, error) {
		return c.do(ctx, method, url, headers, body)
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", c.name, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, headers map[string]string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", c.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Status: resp.StatusCode,
			Body:   truncate(string(data), 512),
		}
	}
	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
