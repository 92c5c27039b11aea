// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation. It is the default when
// no data path is configured and the collaborator of choice in tests.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	counters map[string]memoryCounter

	// now is injectable for deterministic expiry tests.
	now func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type memoryCounter struct {
	count     int64
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:  make(map[string]memoryEntry),
		counters: make(map[string]memoryCounter),
		now:      time.Now,
	}
}

// Get retrieves a value, treating expired entries as misses.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores a value with the given TTL. Last writer wins.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Incr atomically increments the counter at key. A fresh window gets its
// expiry in the same critical section as the first increment.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	counter, ok := s.counters[key]
	if !ok || now.After(counter.expiresAt) {
		counter = memoryCounter{count: 0, expiresAt: now.Add(window)}
	}
	counter.count++
	s.counters[key] = counter
	return counter.count, nil
}

// Count returns the current counter value without incrementing.
func (s *MemoryStore) Count(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter, ok := s.counters[key]
	if !ok || s.now().After(counter.expiresAt) {
		return 0, nil
	}
	return counter.count, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
