// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package revocation records access tokens that were invalidated before their
natural expiry (logout, consumed password-reset tokens).

Every store offers the same two operations:

  - Revoke(ctx, token, ttl): remember token as revoked for ttl. A ttl of zero
    or less is a no-op, because such a token is already rejected by expiry.
  - IsRevoked(ctx, token): true iff an unexpired entry exists for exactly
    that token string.

Entries never need to outlive the token they describe, so each one carries
the token's remaining lifetime as its TTL and storage stays bounded.

# Backends

  - [MemoryStore]: process-local map with lazy expiry and a background sweep.
  - [RedisStore]: shared across replicas, TTL handled by Redis.
  - [BadgerStore]: embedded on-disk store for single-node deployments.

Tokens are stored by their SHA-256 digest ([Key]) so raw credentials never
sit in a cache or on disk.
*/
package revocation

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key returns the storage key for token.
func Key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
