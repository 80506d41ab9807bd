// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/constants"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/platform/validate"
	"github.com/taibuivan/tasknest/internal/users/auth"
	"github.com/taibuivan/tasknest/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for tasks.
type Service struct {
	repository Repository
	lists      ListFinder
	authorizer Authorizer
	logger     *slog.Logger
}

// NewService constructs a new task [Service].
func NewService(repository Repository, lists ListFinder, authorizer Authorizer, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		lists:      lists,
		authorizer: authorizer,
		logger:     logger,
	}
}

/*
CreateTask adds a task to a list the principal may write to.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - input: CreateInput

Returns:
  - *Task: The created task
  - error: Validation, NOT_FOUND (list), FORBIDDEN, UNPROCESSABLE (status) or storage failures
*/
func (service *Service) CreateTask(context context.Context, principal *sec.Principal, input CreateInput) (*Task, error) {
	if principal == nil {
		return nil, auth.ErrForbidden
	}

	input.Title = strings.TrimSpace(input.Title)
	input.ListID = strings.TrimSpace(input.ListID)
	input.StatusID = strings.TrimSpace(input.StatusID)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, MaxTitleLength)
	validator.Required(FieldListID, input.ListID).UUID(FieldListID, input.ListID)
	validator.Required(FieldStatusID, input.StatusID).UUID(FieldStatusID, input.StatusID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.authorizeList(context, principal, input.ListID, auth.OperationCreate); err != nil {
		return nil, err
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		IsCompleted: input.IsCompleted,
		ListID:      input.ListID,
		StatusID:    input.StatusID,
	}

	if err := service.repository.Create(context, task); err != nil {
		return nil, wrap("create", err)
	}

	service.logger.InfoContext(context, "task_created",
		slog.String("task_id", task.ID),
		slog.String("list_id", task.ListID),
	)

	return task, nil
}

/*
ListTasks returns the tasks visible to principal that match filter.

Description: Non-admins only see tasks in lists they own.
*/
func (service *Service) ListTasks(context context.Context, principal *sec.Principal, filter Filter) ([]*Task, error) {
	if principal == nil {
		return nil, auth.ErrForbidden
	}
	if !principal.IsAdmin() {
		if err := service.authorizer.Authorize(principal, auth.ResourceTask, auth.OperationRead, principal.ID); err != nil {
			return nil, err
		}
		filter.ScopeOwnerID = lo.ToPtr(principal.ID)
	}

	tasks, err := service.repository.List(context, filter, constants.MaxListResults)
	if err != nil {
		return nil, fmt.Errorf("task_service_list_failed: %w", err)
	}

	return tasks, nil
}

// GetTask returns one task if principal may read its list.
func (service *Service) GetTask(context context.Context, principal *sec.Principal, id string) (*Task, error) {
	return service.authorized(context, principal, id, auth.OperationRead)
}

/*
UpdateTask applies a partial change to a task.

Description: When ListID names a different list, the principal must be
allowed to update the task where it is and to create it where it goes.
*/
func (service *Service) UpdateTask(context context.Context, principal *sec.Principal, id string, input UpdateInput) (*Task, error) {
	if err := validateUpdate(&input); err != nil {
		return nil, err
	}

	task, err := service.authorized(context, principal, id, auth.OperationUpdate)
	if err != nil {
		return nil, err
	}

	if input.ListID != nil && *input.ListID != task.ListID {
		if err := service.authorizeList(context, principal, *input.ListID, auth.OperationCreate); err != nil {
			return nil, err
		}
		task.ListID = *input.ListID
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	switch {
	case input.ClearDueDate:
		task.DueDate = nil
	case input.DueDate != nil:
		task.DueDate = input.DueDate
	}
	if input.IsCompleted != nil {
		task.IsCompleted = *input.IsCompleted
	}
	if input.StatusID != nil {
		task.StatusID = *input.StatusID
	}

	if err := service.repository.Update(context, task); err != nil {
		return nil, wrap("update", err)
	}

	service.logger.InfoContext(context, "task_updated",
		slog.String("task_id", task.ID),
		slog.Bool("is_completed", task.IsCompleted),
	)

	return task, nil
}

// DeleteTask removes a task.
func (service *Service) DeleteTask(context context.Context, principal *sec.Principal, id string) error {
	if _, err := service.authorized(context, principal, id, auth.OperationDelete); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return wrap("delete", err)
	}

	service.logger.InfoContext(context, "task_deleted", slog.String("task_id", id))

	return nil
}

// # Helpers

// authorized loads a task and checks operation against the owner of its list.
func (service *Service) authorized(context context.Context, principal *sec.Principal, id string, operation auth.Operation) (*Task, error) {
	if principal == nil {
		return nil, auth.ErrForbidden
	}

	task, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, wrap("lookup", err)
	}

	if err := service.authorizeList(context, principal, task.ListID, operation); err != nil {
		return nil, err
	}

	return task, nil
}

func (service *Service) authorizeList(context context.Context, principal *sec.Principal, listID string, operation auth.Operation) error {
	list, err := service.lists.FindByID(context, listID)
	if err != nil {
		return wrap("list_lookup", err)
	}

	return service.authorizer.Authorize(principal, auth.ResourceTask, operation, list.OwnerID)
}

func validateUpdate(input *UpdateInput) error {
	validator := &validate.Validator{}

	if input.Title != nil {
		input.Title = lo.ToPtr(strings.TrimSpace(*input.Title))
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, MaxTitleLength)
	}
	if input.ListID != nil {
		input.ListID = lo.ToPtr(strings.TrimSpace(*input.ListID))
		validator.UUID(FieldListID, *input.ListID)
	}
	if input.StatusID != nil {
		input.StatusID = lo.ToPtr(strings.TrimSpace(*input.StatusID))
		validator.UUID(FieldStatusID, *input.StatusID)
	}
	validator.Custom(FieldDueDate, input.ClearDueDate && input.DueDate != nil, "Cannot both set and clear the due date")

	return validator.Err()
}

func wrap(operation string, err error) error {
	if apperr.IsAppError(err) {
		return err
	}
	return fmt.Errorf("task_service_%s_failed: %w", operation, err)
}
