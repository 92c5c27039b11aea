// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package gemini

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/reelharbor/internal/clients/httpx"
	"github.com/tomtom215/reelharbor/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.GeminiConfig{
		BaseURL: srv.URL,
		APIKey:  "g-key",
		Model:   "gemini-2.0-flash",
		Timeout: 5 * time.Second,
	})
}

func TestComplete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.0-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "g-key" {
			t.Errorf("unexpected key %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "recommend five films") {
			t.Errorf("prompt missing from request body: %s", body)
		}
		_, _ = w.Write([]byte(`{
			"candidates": [
				{"content": {"parts": [{"text": "[{\"title\":\"Heat\"}"}, {"text": "]"}]}, "finishReason": "STOP"}
			]
		}`))
	})

	text, err := c.Complete(context.Background(), "recommend five films")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != `[{"title":"Heat"}]` {
		t.Errorf("expected concatenated parts, got %q", text)
	}
}

func TestCompleteQuotaExceeded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "status": "RESOURCE_EXHAUSTED"}}`))
	})

	_, err := c.Complete(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	var se *httpx.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *httpx.StatusError, got %T: %v", err, err)
	}
	if se.Status != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", se.Status)
	}
}

func TestCompleteNoCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})

	if _, err := c.Complete(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}
