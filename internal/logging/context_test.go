// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("empty context returned request ID %q", got)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("RequestIDFromContext = %q, want req-123", got)
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateRequestID()
		if id == "" {
			t.Fatal("GenerateRequestID returned empty string")
		}
		if seen[id] {
			t.Fatalf("duplicate request ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), zerolog.New(&buf))
	ctx = ContextWithRequestID(ctx, "req-abc")

	Ctx(ctx).Info().Msg("with context")

	out := buf.String()
	if !strings.Contains(out, "req-abc") {
		t.Errorf("log output missing request_id: %q", out)
	}
	if !strings.Contains(out, "with context") {
		t.Errorf("log output missing message: %q", out)
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	// A context without a stored logger falls back to the global logger.
	got := LoggerFromContext(context.Background())
	if got.GetLevel() != Logger().GetLevel() {
		t.Error("LoggerFromContext did not return the global logger")
	}
}
