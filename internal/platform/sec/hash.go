// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with bcrypt.
//
// bcrypt embeds a random salt in every hash, so hashing the same password
// twice yields two different strings that both verify.
type Hasher struct {
	cost int
}

// NewHasher returns a [Hasher] using cost. Values outside bcrypt's accepted
// range fall back to [bcrypt.DefaultCost].
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plainTextPassword.
//
// It fails for inputs longer than 72 bytes, which bcrypt cannot represent.
func (hasher *Hasher) Hash(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify reports whether plainTextPassword matches existingHash.
// A malformed hash simply does not match.
func (hasher *Hasher) Verify(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
