// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tasknest/internal/platform/constants"
)

// RedisStore keeps revocations in Redis so every API replica sees them.
//
// Each entry is a plain key with an expiry; Redis drops it when the token
// would have expired anyway.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore returns a [RedisStore] backed by client.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Revoke executes SET auth:revoked:<digest> 1 with an expiry of ttl.
func (store *RedisStore) Revoke(context context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := store.client.Set(context, redisKey(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis_revocation_store_revoke_failed: %w", err)
	}
	return nil
}

// IsRevoked executes EXISTS on the token's key.
func (store *RedisStore) IsRevoked(context context.Context, token string) (bool, error) {
	count, err := store.client.Exists(context, redisKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_revocation_store_lookup_failed: %w", err)
	}
	return count > 0, nil
}

func redisKey(token string) string {
	return constants.RevokedTokenPrefix + Key(token)
}
