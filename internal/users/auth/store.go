// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract the auth flows need.
//
// Lookups of a missing account return an error for which
// [apperr.IsNotFound] reports true.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given (normalized) username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given (normalized) email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrDuplicateUsername / ErrDuplicateEmail on a unique
		    violation, otherwise persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the account's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: NOT_FOUND or persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error
}

// # Token Revocation

// RevocationStore records access tokens that must no longer be accepted.
//
// Implementations live in the revocation package (memory, Redis, Badger).
type RevocationStore interface {
	// Revoke marks token as revoked for timeToLive. A non-positive TTL is a no-op.
	Revoke(context context.Context, token string, timeToLive time.Duration) error

	// IsRevoked reports whether an unexpired revocation exists for token.
	IsRevoked(context context.Context, token string) (bool, error)
}
