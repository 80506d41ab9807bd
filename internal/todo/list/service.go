// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list

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
	"github.com/taibuivan/tasknest/pkg/normalize"
	"github.com/taibuivan/tasknest/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for todo lists.
type Service struct {
	repository Repository
	owners     OwnerLookup
	authorizer Authorizer
	logger     *slog.Logger
}

// NewService constructs a new list [Service].
func NewService(repository Repository, owners OwnerLookup, authorizer Authorizer, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		owners:     owners,
		authorizer: authorizer,
		logger:     logger,
	}
}

/*
CreateList creates a list owned by the caller, or by OwnerUsername when an
admin names one.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - input: CreateInput

Returns:
  - *TodoList: The created list
  - error: Forbidden, validation, NOT_FOUND (owner), or storage failures
*/
func (service *Service) CreateList(context context.Context, principal *sec.Principal, input CreateInput) (*TodoList, error) {
	if principal == nil {
		return nil, auth.ErrForbidden
	}

	input.Title = strings.TrimSpace(input.Title)
	input.OwnerUsername = normalize.Username(input.OwnerUsername)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, MaxTitleLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	ownerID, ownerUsername := principal.ID, principal.Username
	if input.OwnerUsername != "" && input.OwnerUsername != principal.Username {
		if !principal.IsAdmin() {
			return nil, auth.ErrForbidden
		}
		owner, err := service.owners.FindByUsername(context, input.OwnerUsername)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.NotFound("Owner user")
			}
			return nil, fmt.Errorf("list_service_owner_lookup_failed: %w", err)
		}
		ownerID, ownerUsername = owner.ID, owner.Username
	}

	if err := service.authorizer.Authorize(principal, auth.ResourceList, auth.OperationCreate, ownerID); err != nil {
		return nil, err
	}

	list := &TodoList{
		ID:            uuid.New(),
		Title:         input.Title,
		Description:   input.Description,
		OwnerID:       ownerID,
		OwnerUsername: ownerUsername,
	}

	if err := service.repository.Create(context, list); err != nil {
		return nil, wrap("create", err)
	}

	service.logger.InfoContext(context, "list_created",
		slog.String("list_id", list.ID),
		slog.String("owner_id", list.OwnerID),
	)

	return list, nil
}

/*
ListLists returns the lists visible to principal that match filter.

Description: Non-admins are scoped to their own lists whatever the filter
says. Results are capped at [constants.MaxListResults].
*/
func (service *Service) ListLists(context context.Context, principal *sec.Principal, filter Filter) ([]*TodoList, error) {
	if principal == nil {
		return nil, auth.ErrForbidden
	}
	if !principal.IsAdmin() {
		if err := service.authorizer.Authorize(principal, auth.ResourceList, auth.OperationRead, principal.ID); err != nil {
			return nil, err
		}
		filter.ScopeOwnerID = lo.ToPtr(principal.ID)
	}

	if filter.Username != nil {
		filter.Username = lo.ToPtr(normalize.Username(*filter.Username))
	}
	if filter.Email != nil {
		filter.Email = lo.ToPtr(normalize.Email(*filter.Email))
	}

	lists, err := service.repository.List(context, filter, constants.MaxListResults)
	if err != nil {
		return nil, fmt.Errorf("list_service_list_failed: %w", err)
	}

	return lists, nil
}

// GetList returns one list if principal may read it.
func (service *Service) GetList(context context.Context, principal *sec.Principal, id string) (*TodoList, error) {
	return service.authorized(context, principal, id, auth.OperationRead)
}

/*
UpdateList applies a partial change to a list's title and description.
*/
func (service *Service) UpdateList(context context.Context, principal *sec.Principal, id string, input UpdateInput) (*TodoList, error) {
	if input.Title != nil {
		input.Title = lo.ToPtr(strings.TrimSpace(*input.Title))

		validator := &validate.Validator{}
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, MaxTitleLength)
		if err := validator.Err(); err != nil {
			return nil, err
		}
	}

	list, err := service.authorized(context, principal, id, auth.OperationUpdate)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		list.Title = *input.Title
	}
	if input.Description != nil {
		list.Description = *input.Description
	}

	if err := service.repository.Update(context, list); err != nil {
		return nil, wrap("update", err)
	}

	service.logger.InfoContext(context, "list_updated", slog.String("list_id", list.ID))

	return list, nil
}

// DeleteList removes a list and all of its tasks.
func (service *Service) DeleteList(context context.Context, principal *sec.Principal, id string) error {
	if _, err := service.authorized(context, principal, id, auth.OperationDelete); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return wrap("delete", err)
	}

	service.logger.InfoContext(context, "list_deleted", slog.String("list_id", id))

	return nil
}

// authorized loads a list and checks operation against its owner.
func (service *Service) authorized(context context.Context, principal *sec.Principal, id string, operation auth.Operation) (*TodoList, error) {
	list, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, wrap("lookup", err)
	}

	if err := service.authorizer.Authorize(principal, auth.ResourceList, operation, list.OwnerID); err != nil {
		return nil, err
	}

	return list, nil
}

func wrap(operation string, err error) error {
	if apperr.IsAppError(err) {
		return err
	}
	return fmt.Errorf("list_service_%s_failed: %w", operation, err)
}
