// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockGCRunner reports reclaimable space for the first n calls.
type mockGCRunner struct {
	remaining atomic.Int32
	calls     atomic.Int32
}

func (m *mockGCRunner) RunGC() bool {
	m.calls.Add(1)
	return m.remaining.Add(-1) >= 0
}

func TestStoreGCServiceInterface(t *testing.T) {
	var _ suture.Service = (*StoreGCService)(nil)

	svc := NewStoreGCService(&mockGCRunner{}, time.Minute)
	if got := svc.String(); got != "store-gc" {
		t.Errorf("String() = %q, want %q", got, "store-gc")
	}
}

func TestStoreGCServiceDefaultInterval(t *testing.T) {
	svc := NewStoreGCService(&mockGCRunner{}, 0)
	if svc.interval != 10*time.Minute {
		t.Errorf("interval = %v, want 10m default", svc.interval)
	}
}

func TestStoreGCServiceRunsUntilNothingReclaimed(t *testing.T) {
	runner := &mockGCRunner{}
	runner.remaining.Store(3)

	svc := NewStoreGCService(runner, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	// One tick should drain all three reclaimable value logs plus the
	// final call that reports nothing left.
	deadline := time.After(2 * time.Second)
	for runner.calls.Load() < 4 {
		select {
		case <-deadline:
			t.Fatalf("GC called %d times, want at least 4", runner.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
