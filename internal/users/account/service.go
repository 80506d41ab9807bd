// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/constants"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/platform/validate"
	"github.com/taibuivan/tasknest/internal/users/auth"
	"github.com/taibuivan/tasknest/pkg/normalize"
)

// # Service Layer

// Service orchestrates account administration.
type Service struct {
	accountRepository Repository
	authorizer        Authorizer
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, authorizer Authorizer, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: repository,
		authorizer:        authorizer,
		logger:            logger,
	}
}

/*
ListAccounts returns the accounts visible to principal that match filter.

Description: Admins see every account. Anyone else sees at most their own,
whatever the filter says. Results are capped at [constants.MaxListResults].

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - filter: Filter

Returns:
  - []*auth.User: Matching accounts
  - error: Forbidden or retrieval failures
*/
func (service *Service) ListAccounts(context context.Context, principal *sec.Principal, filter Filter) ([]*auth.User, error) {
	if principal == nil {
		return nil, auth.ErrForbidden
	}
	if !principal.IsAdmin() {
		if err := service.authorizer.Authorize(principal, auth.ResourceUser, auth.OperationRead, principal.ID); err != nil {
			return nil, err
		}
		filter.ScopeID = lo.ToPtr(principal.ID)
	}

	filter.Username = normalizeOptional(filter.Username, normalize.Username)
	filter.Email = normalizeOptional(filter.Email, normalize.Email)

	users, err := service.accountRepository.List(context, filter, constants.MaxListResults)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_failed: %w", err)
	}

	return users, nil
}

/*
GetAccount returns one account.

Description: Authorization runs before the lookup, so a non-admin probing
another ID learns nothing about whether it exists.
*/
func (service *Service) GetAccount(context context.Context, principal *sec.Principal, id string) (*auth.User, error) {
	if err := service.authorizer.Authorize(principal, auth.ResourceUser, auth.OperationRead, id); err != nil {
		return nil, err
	}

	user, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, service.wrap("get", err)
	}

	return user, nil
}

/*
UpdateAccount applies a partial change to an account.

Description: The owner may change their own username and email. Only an
admin may change a role, including their own.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - id: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: Forbidden, validation, duplicate, NOT_FOUND or storage failures
*/
func (service *Service) UpdateAccount(context context.Context, principal *sec.Principal, id string, input UpdateInput) (*auth.User, error) {
	if err := service.authorizer.Authorize(principal, auth.ResourceUser, auth.OperationUpdate, id); err != nil {
		return nil, err
	}
	if input.Role != nil && !principal.IsAdmin() {
		return nil, auth.ErrForbidden
	}

	input.Username = normalizeOptional(input.Username, normalize.Username)
	input.Email = normalizeOptional(input.Email, normalize.Email)
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	user, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, service.wrap("update_lookup", err)
	}

	// Apply delta updates
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, service.wrap("update", err)
	}

	service.logger.InfoContext(context, "user_account_updated",
		slog.String("user_id", user.ID),
		slog.String("actor_id", principal.ID),
	)

	return user, nil
}

/*
DeleteAccount removes an account together with its lists and tasks.
*/
func (service *Service) DeleteAccount(context context.Context, principal *sec.Principal, id string) error {
	if err := service.authorizer.Authorize(principal, auth.ResourceUser, auth.OperationDelete, id); err != nil {
		return err
	}

	if err := service.accountRepository.Delete(context, id); err != nil {
		return service.wrap("delete", err)
	}

	service.logger.WarnContext(context, "user_account_deleted",
		slog.String("user_id", id),
		slog.String("actor_id", principal.ID),
	)

	return nil
}

// # Helpers

// wrap passes domain errors through and tags infrastructure failures.
func (service *Service) wrap(operation string, err error) error {
	if apperr.IsAppError(err) {
		return err
	}
	return fmt.Errorf("account_service_%s_failed: %w", operation, err)
}

func normalizeOptional(value *string, normalizer func(string) string) *string {
	if value == nil {
		return nil
	}
	return lo.ToPtr(normalizer(*value))
}

func validateUpdate(input UpdateInput) error {
	validator := &validate.Validator{}

	if input.Username != nil {
		validator.Required(FieldUsername, *input.Username).
			MinLen(FieldUsername, *input.Username, auth.MinUsernameLength).
			MaxLen(FieldUsername, *input.Username, auth.MaxUsernameLength).
			Username(FieldUsername, *input.Username)
	}
	if input.Email != nil {
		validator.Required(FieldEmail, *input.Email).
			MaxLen(FieldEmail, *input.Email, auth.MaxEmailLength).
			Email(FieldEmail, *input.Email)
	}
	if input.Role != nil {
		validator.Role(FieldRole, string(*input.Role))
	}

	return validator.Err()
}
