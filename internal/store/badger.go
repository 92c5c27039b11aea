// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/reelharbor/internal/logging"
)

// BadgerStore implements Store on BadgerDB. Cache entries use Badger's
// native TTL support; counters ride on the same mechanism so a rate-limit
// window and its expiry are written in one transaction.
type BadgerStore struct {
	db *badger.DB
}

// incrRetries bounds optimistic-transaction retries on write conflicts.
const incrRetries = 5

// NewBadgerStore opens a BadgerDB-backed store at path.
// An empty path opens Badger in memory (no persistence).
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

// Get retrieves a value. Badger treats expired entries as missing.
func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a value with the given TTL. Last writer wins.
func (s *BadgerStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(ttl))
	})
	if err != nil {
		return fmt.Errorf("store set %s: %w", key, err)
	}
	return nil
}

// Incr atomically increments the counter at key within its window.
// The first increment writes the window expiry in the same transaction;
// later increments preserve the existing expiry so the window never slides.
// Conflicting concurrent transactions are retried.
func (s *BadgerStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	var count int64

	for attempt := 0; attempt < incrRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		err := s.db.Update(func(txn *badger.Txn) error {
			var expiresAt uint64

			item, err := txn.Get([]byte(key))
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				count = 1
			case err != nil:
				return err
			default:
				current, verr := counterValue(item)
				if verr != nil {
					return verr
				}
				count = current + 1
				expiresAt = item.ExpiresAt()
			}

			entry := badger.NewEntry([]byte(key), []byte(strconv.FormatInt(count, 10)))
			if expiresAt == 0 {
				entry = entry.WithTTL(window)
			} else {
				entry.ExpiresAt = expiresAt
			}
			return txn.SetEntry(entry)
		})

		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("store incr %s: %w", key, err)
		}
		return count, nil
	}

	return 0, fmt.Errorf("store incr %s: too many write conflicts", key)
}

// Count returns the current counter value without incrementing.
func (s *BadgerStore) Count(_ context.Context, key string) (int64, error) {
	var count int64

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		count, err = counterValue(item)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("store count %s: %w", key, err)
	}
	return count, nil
}

// RunGC performs one value-log garbage collection pass. Returns true when
// a log file was rewritten, signaling the caller to run another pass.
func (s *BadgerStore) RunGC() bool {
	err := s.db.RunValueLogGC(0.5)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		logging.Warn().Err(err).Msg("badger value log GC failed")
	}
	return err == nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// counterValue parses the stored counter payload.
func counterValue(item *badger.Item) (int64, error) {
	var count int64
	err := item.Value(func(val []byte) error {
		parsed, perr := strconv.ParseInt(string(val), 10, 64)
		if perr != nil {
			return fmt.Errorf("malformed counter value %q: %w", val, perr)
		}
		count = parsed
		return nil
	})
	return count, err
}
