// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps revocations in a process-local map.
//
// It is safe for concurrent use. Expired entries are ignored on read and
// removed by [MemoryStore.Sweep], which [MemoryStore.StartSweeper] runs periodically.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// MemoryOption customizes a [MemoryStore].
type MemoryOption func(*MemoryStore)

// WithClock replaces the wall clock used for expiry decisions.
func WithClock(now func() time.Time) MemoryOption {
	return func(store *MemoryStore) {
		store.now = now
	}
}

// NewMemoryStore returns an empty [MemoryStore].
func NewMemoryStore(options ...MemoryOption) *MemoryStore {
	store := &MemoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
	for _, option := range options {
		option(store)
	}
	return store
}

// Revoke records token as revoked until now+ttl.
//
// Revoking an already revoked token keeps the later of the two expiries, so
// concurrent calls converge on the same state in any order.
func (store *MemoryStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := Key(token)
	until := store.now().Add(ttl)

	store.mu.Lock()
	defer store.mu.Unlock()

	if existing, found := store.entries[key]; !found || existing.Before(until) {
		store.entries[key] = until
	}
	return nil
}

// IsRevoked reports whether token has an unexpired revocation entry.
func (store *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	key := Key(token)

	store.mu.RLock()
	until, found := store.entries[key]
	store.mu.RUnlock()

	return found && store.now().Before(until), nil
}

// Sweep deletes expired entries and returns how many were removed.
func (store *MemoryStore) Sweep() int {
	now := store.now()

	store.mu.Lock()
	defer store.mu.Unlock()

	removed := 0
	for key, until := range store.entries {
		if !now.Before(until) {
			delete(store.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not.
func (store *MemoryStore) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.entries)
}

// StartSweeper runs [MemoryStore.Sweep] every interval until context is cancelled.
func (store *MemoryStore) StartSweeper(context context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				store.Sweep()
			case <-context.Done():
				return
			}
		}
	}()
}
