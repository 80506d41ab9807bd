// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package task manages the tasks inside todo lists.

A task has no owner of its own: it belongs to whoever owns its list. Every
operation therefore resolves the list first and authorizes against the
list's owner. Moving a task to another list requires write access to both.
*/
package task

import (
	"context"
	"time"

	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/todo/list"
	"github.com/taibuivan/tasknest/internal/users/auth"
)

// # Domain Entities

// Task is a single todo item.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
	ListID      string     `json:"todo_list_id"`
	StatusID    string     `json:"status_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// # Query & Input Types

// Filter narrows a task listing. Nil fields are not applied.
type Filter struct {
	ListID      *string
	IsCompleted *bool

	// ScopeOwnerID restricts results to lists of one owner. Set by the
	// service for non-admins.
	ScopeOwnerID *string
}

// CreateInput holds the fields of a new task.
type CreateInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	IsCompleted bool
	ListID      string
	StatusID    string
}

// UpdateInput holds the fields to change. Nil means unchanged.
//
// ClearDueDate removes the due date and cannot be combined with DueDate.
type UpdateInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	IsCompleted  *bool
	ListID       *string
	StatusID     *string
}

// # Contracts

// Authorizer decides whether a principal may act on a resource.
type Authorizer interface {
	Authorize(principal *sec.Principal, resource auth.Resource, operation auth.Operation, ownerID string) error
}

// ListFinder loads the list a task belongs to. It is implemented by
// [list.PostgresRepository].
type ListFinder interface {
	FindByID(context context.Context, id string) (*list.TodoList, error)
}

// Repository defines the persistence contract for tasks.
type Repository interface {

	/*
		List returns the tasks matching filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int

		Returns:
		  - []*Task: Matching tasks
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit int) ([]*Task, error)

	// FindByID returns one task, or NOT_FOUND.
	FindByID(context context.Context, id string) (*Task, error)

	// Create persists a new task and fills CreatedAt. An unknown status is UNPROCESSABLE.
	Create(context context.Context, task *Task) error

	// Update persists every mutable field.
	Update(context context.Context, task *Task) error

	// Delete removes a task.
	Delete(context context.Context, id string) error
}

// # Field Identifiers

const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDueDate     = "due_date"
	FieldListID      = "todo_list_id"
	FieldStatusID    = "status_id"
	FieldIsCompleted = "is_completed"
)

// MaxTitleLength bounds task titles.
const MaxTitleLength = 200
