// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles administration of registered user accounts.

It lets a caller list, view, edit and delete accounts. Registration and every
credential flow live in the auth package; this package never touches
passwords.

# Architecture

  - Entities: the account is [auth.User]; this package adds Filter and UpdateInput.
  - Access: every operation is checked against the auth policy table.
    Non-admins only ever see and edit their own account, and only admins may
    change a role.
  - Storage: users.account, shared with the auth package.
*/
package account

import (
	"context"

	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/users/auth"
)

// # Query & Input Types

// Filter narrows an account listing. Nil fields are not applied.
type Filter struct {
	ID       *string
	Username *string
	Email    *string

	// ScopeID restricts results to one account. Set by the service for non-admins.
	ScopeID *string
}

// UpdateInput holds the fields a caller wants to change. Nil means unchanged.
type UpdateInput struct {
	Username *string
	Email    *string
	Role     *sec.UserRole
}

// # Contracts

// Authorizer decides whether a principal may act on a resource.
// It is implemented by [auth.Guard].
type Authorizer interface {
	Authorize(principal *sec.Principal, resource auth.Resource, operation auth.Operation, ownerID string) error
}

// Repository defines the persistence contract for account administration.
type Repository interface {

	/*
		List returns the accounts matching filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int (maximum rows)

		Returns:
		  - []*auth.User: Matching accounts (possibly empty)
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit int) ([]*auth.User, error)

	// FindByID returns the account with id, or a NOT_FOUND error.
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Update persists username, email and role of an existing account.

		Returns:
		  - error: auth.ErrDuplicateUsername / auth.ErrDuplicateEmail,
		    NOT_FOUND, or persistence failures
	*/
	Update(context context.Context, user *auth.User) error

	// Delete removes the account. Its lists and their tasks go with it.
	Delete(context context.Context, id string) error
}

// # Field Identifiers

const (
	FieldID       = "id"
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldRole     = "role"
)
