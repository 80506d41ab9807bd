// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/sec"
)

// Guard resolves bearer tokens to principals and enforces the policy table.
//
// It implements the middleware's PrincipalResolver and RoleChecker.
type Guard struct {
	users       UserRepository
	tokens      TokenManager
	revocations RevocationStore
	policy      *Policy
	logger      *slog.Logger
}

// NewGuard constructs a [Guard]. A nil policy means [DefaultPolicy].
func NewGuard(users UserRepository, tokens TokenManager, revocations RevocationStore, policy *Policy, logger *slog.Logger) *Guard {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Guard{
		users:       users,
		tokens:      tokens,
		revocations: revocations,
		policy:      policy,
		logger:      logger,
	}
}

/*
ResolvePrincipal turns a raw access token into the caller it identifies.

Description: Checks run in a fixed order and the first failure wins:
revocation, then signature/expiry/type, then scope (a token carrying an
action is not a general credential), then account lookup by username and ID. The returned role
is the stored one, not the role claim.

Parameters:
  - context: context.Context
  - token: string (raw JWT, without the "Bearer " prefix)

Returns:
  - *sec.Principal: The resolved caller
  - error: ErrTokenRevoked, ErrInvalidToken, ErrPrincipalNotFound, or an
    internal error if a backing store fails
*/
func (guard *Guard) ResolvePrincipal(context context.Context, token string) (*sec.Principal, error) {

	// 1. Revocation
	revoked, err := guard.revocations.IsRevoked(context, token)
	if err != nil {
		return nil, fmt.Errorf("auth_guard_revocation_check_failed: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	// 2. Signature, expiry and token type
	claims, err := guard.tokens.DecodeAccess(token)
	if err != nil {
		return nil, ErrInvalidToken.Wrap(err)
	}

	// 3. Scoped tokens (password reset) are not general credentials
	if claims.Action != "" {
		guard.logger.WarnContext(context, "auth_scoped_token_rejected", slog.String("action", claims.Action))
		return nil, ErrInvalidToken
	}

	// 4. The account must still exist and be the one the token was issued to
	user, err := guard.users.FindByUsername(context, claims.Username())
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("auth_guard_principal_lookup_failed: %w", err)
	}
	if user.ID != claims.UserID {
		guard.logger.WarnContext(context, "auth_token_account_mismatch", slog.String("user_id", user.ID))
		return nil, ErrPrincipalNotFound
	}

	return user.Principal(), nil
}

// RequireRole returns [ErrForbidden] unless principal holds one of roles.
func (guard *Guard) RequireRole(principal *sec.Principal, roles ...sec.UserRole) error {
	if principal == nil || !principal.Role.In(roles...) {
		return ErrForbidden
	}
	return nil
}

// Authorize applies the guard's policy table. See [Policy.Authorize].
func (guard *Guard) Authorize(principal *sec.Principal, resource Resource, operation Operation, ownerID string) error {
	return guard.policy.Authorize(principal, resource, operation, ownerID)
}
