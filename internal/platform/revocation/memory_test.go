// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package revocation_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasknest/internal/platform/revocation"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newMemoryStore() (*revocation.MemoryStore, *clock) {
	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return revocation.NewMemoryStore(revocation.WithClock(c.Now)), c
}

/*
TestMemoryStore_RevokeAndExpire checks TTL-bounded membership.
*/
func TestMemoryStore_RevokeAndExpire(t *testing.T) {
	ctx := context.Background()
	store, c := newMemoryStore()

	require.NoError(t, store.Revoke(ctx, "token-a", time.Minute))

	revoked, err := store.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = store.IsRevoked(ctx, "token-b")
	assert.False(t, revoked, "only the exact token string is revoked")

	c.Advance(time.Minute)
	revoked, _ = store.IsRevoked(ctx, "token-a")
	assert.False(t, revoked)

	assert.Equal(t, 1, store.Sweep())
	assert.Zero(t, store.Len())
}

/*
TestMemoryStore_NonPositiveTTL treats already-expired revocations as no-ops.
*/
func TestMemoryStore_NonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	store, _ := newMemoryStore()

	require.NoError(t, store.Revoke(ctx, "expired", 0))
	require.NoError(t, store.Revoke(ctx, "expired", -time.Second))

	revoked, err := store.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Zero(t, store.Len())
}

/*
TestMemoryStore_RevokeNeverShortens keeps the later expiry on repeated revocation.
*/
func TestMemoryStore_RevokeNeverShortens(t *testing.T) {
	ctx := context.Background()
	store, c := newMemoryStore()

	require.NoError(t, store.Revoke(ctx, "tok", 10*time.Minute))
	require.NoError(t, store.Revoke(ctx, "tok", time.Minute))

	c.Advance(5 * time.Minute)
	revoked, _ := store.IsRevoked(ctx, "tok")
	assert.True(t, revoked)
}

/*
TestMemoryStore_Concurrent revokes and reads the same tokens from many goroutines.
*/
func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store, _ := newMemoryStore()

	var wg sync.WaitGroup
	for worker := 0; worker < 16; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				token := fmt.Sprintf("token-%d", i%10)
				assert.NoError(t, store.Revoke(ctx, token, time.Hour))
				_, err := store.IsRevoked(ctx, token)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, store.Len())
	for i := 0; i < 10; i++ {
		revoked, _ := store.IsRevoked(ctx, fmt.Sprintf("token-%d", i))
		assert.True(t, revoked)
	}
}

/*
TestMemoryStore_Sweeper stops when its context is cancelled.
*/
func TestMemoryStore_Sweeper(t *testing.T) {
	store := revocation.NewMemoryStore()
	require.NoError(t, store.Revoke(context.Background(), "short", 5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.StartSweeper(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)
}

/*
TestKey is stable and hides the raw token.
*/
func TestKey(t *testing.T) {
	assert.Equal(t, revocation.Key("abc"), revocation.Key("abc"))
	assert.NotEqual(t, revocation.Key("abc"), revocation.Key("abd"))
	assert.Len(t, revocation.Key("abc"), 64)
	assert.NotContains(t, revocation.Key("secret-token"), "secret")
}
