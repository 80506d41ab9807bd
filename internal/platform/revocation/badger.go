// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/taibuivan/tasknest/internal/platform/constants"
)

// gcDiscardRatio is the share of stale data that makes a value-log file eligible for rewrite.
const gcDiscardRatio = 0.5

// BadgerStore keeps revocations in an embedded Badger database.
//
// Entries are written with a Badger TTL. Badger resolves expiry to whole
// seconds, so a ttl below one second may lapse immediately.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore returns a [BadgerStore] backed by db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Revoke writes the token's key with an expiry of ttl.
func (store *BadgerStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	err := store.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(badgerKey(token), []byte{1}).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("badger_revocation_store_revoke_failed: %w", err)
	}
	return nil
}

// IsRevoked looks the token's key up; expired keys read as missing.
func (store *BadgerStore) IsRevoked(_ context.Context, token string) (bool, error) {
	err := store.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(badgerKey(token))
		return err
	})

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("badger_revocation_store_lookup_failed: %w", err)
	}
}

// RunGC reclaims value-log space every interval until context is cancelled.
func (store *BadgerStore) RunGC(context context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// Each successful pass may leave more to collect.
				for store.db.RunValueLogGC(gcDiscardRatio) == nil {
				}
			case <-context.Done():
				return
			}
		}
	}()
}

func badgerKey(token string) []byte {
	return []byte(constants.RevokedTokenPrefix + Key(token))
}
