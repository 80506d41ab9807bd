// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package status manages the shared catalogue of task statuses.

Statuses (e.g. "pendiente", "en progreso", "completada") are global: every
authenticated caller can read them, only admins can change them. A status
still referenced by a task cannot be deleted.
*/
package status

import (
	"context"
	"net/http"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/users/auth"
)

// # Domain Entities

// Status is a named, colored task state.
type Status struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Input carries the writable fields of a status. Nil means unchanged on update.
type Input struct {
	Name  *string
	Color *string
}

// # Errors

// ErrStatusInUse is returned when deleting a status that tasks still reference.
var ErrStatusInUse = apperr.New("STATUS_IN_USE", "Status is still assigned to tasks", http.StatusConflict)

// # Contracts

// Authorizer decides whether a principal may act on a resource.
type Authorizer interface {
	Authorize(principal *sec.Principal, resource auth.Resource, operation auth.Operation, ownerID string) error
}

// Repository defines the persistence contract for statuses.
type Repository interface {
	// List returns up to limit statuses ordered by name.
	List(context context.Context, limit int) ([]*Status, error)

	// FindByID returns the status with id, or a NOT_FOUND error.
	FindByID(context context.Context, id string) (*Status, error)

	// Create persists a new status. A taken name is a CONFLICT.
	Create(context context.Context, status *Status) error

	// Update persists name and color. A taken name is a CONFLICT.
	Update(context context.Context, status *Status) error

	/*
		Delete removes a status.

		Returns:
		  - error: ErrStatusInUse if tasks reference it, NOT_FOUND, or
		    persistence failures
	*/
	Delete(context context.Context, id string) error
}

// # Field Identifiers

const (
	FieldID    = "id"
	FieldName  = "name"
	FieldColor = "color"
)

// # Constraints

const (
	MaxNameLength  = 50
	MaxColorLength = 32
)
