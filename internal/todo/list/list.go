// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package list manages todo lists.

A list belongs to exactly one account. Owners (role user) read and write
their own lists, viewers only read their own, admins act on every list and
may create lists on behalf of another account. Deleting a list deletes its
tasks.
*/
package list

import (
	"context"
	"time"

	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/users/auth"
)

// # Domain Entities

// TodoList is a named collection of tasks.
type TodoList struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	OwnerID       string    `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	CreatedAt     time.Time `json:"created_at"`
}

// # Query & Input Types

// Filter narrows a list listing. Nil fields are not applied.
type Filter struct {
	ID       *string
	OwnerID  *string
	Username *string // owner's username
	Email    *string // owner's email

	// ScopeOwnerID restricts results to one owner. Set by the service for non-admins.
	ScopeOwnerID *string
}

// CreateInput holds the fields of a new list.
type CreateInput struct {
	Title       string
	Description string

	// OwnerUsername creates the list for another account. Admin only; empty
	// means the caller.
	OwnerUsername string
}

// UpdateInput holds the fields to change. Nil means unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
}

// # Contracts

// Authorizer decides whether a principal may act on a resource.
type Authorizer interface {
	Authorize(principal *sec.Principal, resource auth.Resource, operation auth.Operation, ownerID string) error
}

// OwnerLookup resolves the account named by CreateInput.OwnerUsername.
// It is implemented by [auth.PostgresUserRepository].
type OwnerLookup interface {
	FindByUsername(context context.Context, username string) (*auth.User, error)
}

// Repository defines the persistence contract for todo lists.
type Repository interface {

	/*
		List returns the lists matching filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int

		Returns:
		  - []*TodoList: Matching lists with OwnerUsername populated
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit int) ([]*TodoList, error)

	// FindByID returns one list with OwnerUsername populated, or NOT_FOUND.
	FindByID(context context.Context, id string) (*TodoList, error)

	// Create persists a new list and fills CreatedAt.
	Create(context context.Context, list *TodoList) error

	// Update persists title and description.
	Update(context context.Context, list *TodoList) error

	// Delete removes a list and, through the foreign key, its tasks.
	Delete(context context.Context, id string) error
}

// # Field Identifiers

const (
	FieldID            = "id"
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldOwnerID       = "owner_id"
	FieldOwnerUsername = "owner_username"
	FieldUsername      = "username"
	FieldEmail         = "email"
)

// MaxTitleLength bounds list titles.
const MaxTitleLength = 200
