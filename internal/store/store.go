// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package store provides the shared cache and rate-limit store used by all
// concurrent request handlers.
//
// Two implementations exist:
//
//   - BadgerStore: BadgerDB-backed, persists cache entries and rate-limit
//     windows across restarts. Production default when a data path is set.
//   - MemoryStore: mutex-guarded map, used in tests and when no data path
//     is configured.
//
// Cache semantics: entries expire by TTL only, never by explicit
// invalidation. Rate-limit counters are fixed-window: the first increment
// in a window sets the window expiry atomically with the increment, so a
// counter can never grow without an expiry attached.
package store

import (
	"context"
	"time"
)

// Store is the shared TTL key-value store with atomic windowed counters.
// All methods are safe for concurrent use.
type Store interface {
	// Get retrieves a value. Returns ok=false on miss or expiry.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Incr atomically increments the counter at key and returns the new
	// count. The first increment in a window sets the window expiry in the
	// same atomic operation; later increments preserve the remaining window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)

	// Count returns the current counter value without incrementing.
	// Returns zero for a missing or expired counter.
	Count(ctx context.Context, key string) (int64, error)

	// Close releases store resources.
	Close() error
}
