// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package services

import (
	"context"
	"time"

	"github.com/tomtom215/reelharbor/internal/logging"
)

// GCRunner is the slice of the store the GC loop needs.
// Satisfied by *store.BadgerStore; the in-memory store needs no GC.
type GCRunner interface {
	RunGC() bool
}

// StoreGCService runs BadgerDB value-log garbage collection on a fixed
// interval as a supervised service.
//
// Badger's GC only reclaims space when called repeatedly; each RunGC call
// rewrites at most one value-log file, so the loop keeps calling until a
// pass reclaims nothing.
type StoreGCService struct {
	runner   GCRunner
	interval time.Duration
	name     string
}

// NewStoreGCService creates a garbage collection loop for the store.
// A non-positive interval falls back to 10 minutes.
func NewStoreGCService(runner GCRunner, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		runner:   runner,
		interval: interval,
		name:     "store-gc",
	}
}

// Serve implements suture.Service. Blocks until the context is canceled.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			reclaimed := 0
			for s.runner.RunGC() {
				reclaimed++
			}
			if reclaimed > 0 {
				logging.Debug().
					Int("value_logs_rewritten", reclaimed).
					Msg("store garbage collection pass complete")
			}
		}
	}
}

// String implements fmt.Stringer for logging.
func (s *StoreGCService) String() string {
	return s.name
}
