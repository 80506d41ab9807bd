// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package status

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/constants"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/platform/validate"
	"github.com/taibuivan/tasknest/internal/users/auth"
	"github.com/taibuivan/tasknest/pkg/uuid"
)

// Service orchestrates business rules for task statuses.
type Service struct {
	repository Repository
	authorizer Authorizer
	logger     *slog.Logger
}

// NewService constructs a new status [Service].
func NewService(repository Repository, authorizer Authorizer, logger *slog.Logger) *Service {
	return &Service{repository: repository, authorizer: authorizer, logger: logger}
}

// ListStatuses returns every status, ordered by name.
func (service *Service) ListStatuses(context context.Context, principal *sec.Principal) ([]*Status, error) {
	if err := service.authorizer.Authorize(principal, auth.ResourceStatus, auth.OperationRead, ""); err != nil {
		return nil, err
	}

	statuses, err := service.repository.List(context, constants.MaxListResults)
	if err != nil {
		return nil, fmt.Errorf("status_service_list_failed: %w", err)
	}
	return statuses, nil
}

/*
CreateStatus adds a status to the catalogue.

Parameters:
  - context: context.Context
  - principal: *sec.Principal (must be an admin)
  - input: Input (Name required; Color optional)

Returns:
  - *Status: The created status
  - error: Forbidden, validation, CONFLICT on a taken name, or storage failures
*/
func (service *Service) CreateStatus(context context.Context, principal *sec.Principal, input Input) (*Status, error) {
	if err := service.authorizer.Authorize(principal, auth.ResourceStatus, auth.OperationCreate, ""); err != nil {
		return nil, err
	}

	input = trim(input)
	validator := &validate.Validator{}
	if input.Name == nil {
		validator.Required(FieldName, "")
	}
	validateInput(validator, input)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	status := &Status{ID: uuid.New(), Name: *input.Name}
	if input.Color != nil {
		status.Color = *input.Color
	}

	if err := service.repository.Create(context, status); err != nil {
		return nil, wrap("create", err)
	}

	service.logger.InfoContext(context, "status_created",
		slog.String("status_id", status.ID),
		slog.String("name", status.Name),
	)

	return status, nil
}

// UpdateStatus renames or recolors a status. Admin only.
func (service *Service) UpdateStatus(context context.Context, principal *sec.Principal, id string, input Input) (*Status, error) {
	if err := service.authorizer.Authorize(principal, auth.ResourceStatus, auth.OperationUpdate, ""); err != nil {
		return nil, err
	}

	input = trim(input)
	validator := &validate.Validator{}
	validateInput(validator, input)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	status, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, wrap("update_lookup", err)
	}

	if input.Name != nil {
		status.Name = *input.Name
	}
	if input.Color != nil {
		status.Color = *input.Color
	}

	if err := service.repository.Update(context, status); err != nil {
		return nil, wrap("update", err)
	}

	service.logger.InfoContext(context, "status_updated", slog.String("status_id", status.ID))

	return status, nil
}

// DeleteStatus removes an unused status. Admin only.
func (service *Service) DeleteStatus(context context.Context, principal *sec.Principal, id string) error {
	if err := service.authorizer.Authorize(principal, auth.ResourceStatus, auth.OperationDelete, ""); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return wrap("delete", err)
	}

	service.logger.InfoContext(context, "status_deleted", slog.String("status_id", id))

	return nil
}

// # Helpers

func trim(input Input) Input {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		input.Name = &name
	}
	if input.Color != nil {
		color := strings.ToLower(strings.TrimSpace(*input.Color))
		input.Color = &color
	}
	return input
}

func validateInput(validator *validate.Validator, input Input) {
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, MaxNameLength)
	}
	if input.Color != nil && *input.Color != "" {
		validator.MaxLen(FieldColor, *input.Color, MaxColorLength).Color(FieldColor, *input.Color)
	}
}

func wrap(operation string, err error) error {
	if apperr.IsAppError(err) {
		return err
	}
	return fmt.Errorf("status_service_%s_failed: %w", operation, err)
}
