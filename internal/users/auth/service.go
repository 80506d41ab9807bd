// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/constants"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/platform/validate"
	"github.com/taibuivan/tasknest/pkg/normalize"
	"github.com/taibuivan/tasknest/pkg/uuid"
)

// # Contracts & Types

// TokenManager issues and decodes signed tokens. It is implemented by
// [sec.TokenService].
type TokenManager interface {
	Now() time.Time
	IssueAccessToken(claims sec.AccessClaims, timeToLive time.Duration) (string, error)
	IssueRefreshToken(subject, userID string, role sec.UserRole) (string, error)
	DecodeAccess(token string) (*sec.Claims, error)
	DecodeRefresh(token string) (*sec.Claims, error)
}

// PasswordHasher hashes and verifies passwords. It is implemented by [sec.Hasher].
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// EventPublisher delivers domain events to the message broker.
type EventPublisher interface {
	Publish(context context.Context, topic string, payload any) error
}

// AuthRecorder counts auth flow outcomes.
type AuthRecorder interface {
	AuthEvent(event, outcome string)
}

// Service implements the authentication flows.
type Service struct {
	users       UserRepository
	hasher      PasswordHasher
	tokens      TokenManager
	revocations RevocationStore
	events      EventPublisher
	recorder    AuthRecorder
	logger      *slog.Logger
}

// ServiceOption wires an optional collaborator into the [Service].
type ServiceOption func(*Service)

// WithEvents publishes registration and password reset events through publisher.
func WithEvents(publisher EventPublisher) ServiceOption {
	return func(service *Service) { service.events = publisher }
}

// WithRecorder counts flow outcomes through recorder.
func WithRecorder(recorder AuthRecorder) ServiceOption {
	return func(service *Service) { service.recorder = recorder }
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	users UserRepository,
	hasher PasswordHasher,
	tokens TokenManager,
	revocations RevocationStore,
	logger *slog.Logger,
	options ...ServiceOption,
) *Service {
	service := &Service{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		logger:      logger,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// TokenPair is returned by a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AccessGrant is returned by a successful refresh. The refresh token is not rotated.
type AccessGrant struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ResetGrant is returned by a successful forgot-password request.
type ResetGrant struct {
	ResetToken string    `json:"reset_token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     sec.UserRole
}

/*
Register validates, hashes, and persists a brand new account.

Description: Username and email are normalized and pre-checked for
duplicates (username first); the database unique indexes remain the
authority when two registrations race. An empty role means the default role.
Only an admin actor may create another admin.

Parameters:
  - context: context.Context
  - input: RegisterInput
  - actor: *sec.Principal (nil for anonymous self-registration)

Returns:
  - *User: Created entity
  - error: Validation, ErrForbidden, ErrDuplicateUsername, ErrDuplicateEmail or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput, actor *sec.Principal) (user *User, err error) {
	defer func() { service.record(EventRegister, err) }()

	input.Username = normalize.Username(input.Username)
	input.Email = normalize.Email(input.Email)
	if input.Role == "" {
		input.Role = sec.DefaultRole
	}

	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	// Public registration must not mint administrators.
	if input.Role == sec.RoleAdmin && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	// Verify username uniqueness first: a clash on both reports the username.
	if err := service.ensureAbsent(context, service.users.FindByUsername, input.Username, ErrDuplicateUsername); err != nil {
		return nil, err
	}
	if err := service.ensureAbsent(context, service.users.FindByEmail, input.Email, ErrDuplicateEmail); err != nil {
		return nil, err
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user = &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         input.Role,
	}

	if err := service.users.Create(context, user); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.InfoContext(context, "auth_user_registered",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role.String()),
	)

	service.publish(context, constants.QueueUserRegistered, UserRegistered{
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role,
		OccurredAt: service.tokens.Now().UTC(),
	})

	return user, nil
}

// ensureAbsent returns duplicate if lookup finds a row for value.
func (service *Service) ensureAbsent(
	context context.Context,
	lookup func(context.Context, string) (*User, error),
	value string,
	duplicate error,
) error {
	_, err := lookup(context, value)
	switch {
	case err == nil:
		return duplicate
	case apperr.IsNotFound(err):
		return nil
	default:
		return fmt.Errorf("auth_service_duplicate_check_failed: %w", err)
	}
}

func validateRegistration(input RegisterInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Username(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength).
		Email(FieldEmail, input.Email).
		Role(FieldRole, string(input.Role))
	validatePassword(validator, FieldPassword, input.Password)
	return validator.Err()
}

func validatePassword(validator *validate.Validator, field, password string) {
	validator.Required(field, password).
		MinLen(field, password, MinPasswordLength).
		Custom(field, len(password) > MaxPasswordLength, fmt.Sprintf("Maximum %d bytes", MaxPasswordLength))
}

// # Authentication Flow

/*
Login validates credentials and issues an access/refresh token pair.

Description: An unknown username and a wrong password produce the same
error. The access token lifetime depends on the account's role.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *TokenPair: Access and refresh tokens
  - error: ErrInvalidCredentials or internal failures
*/
func (service *Service) Login(context context.Context, username, password string) (pair *TokenPair, err error) {
	defer func() { service.record(EventLogin, err) }()

	user, err := service.users.FindByUsername(context, normalize.Username(username))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !service.hasher.Verify(password, user.PasswordHash) {
		service.logger.InfoContext(context, "auth_login_failed", slog.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	timeToLive := sec.AccessTTLFor(user.Role)
	accessToken, err := service.tokens.IssueAccessToken(sec.AccessClaims{
		Subject: user.Username,
		UserID:  user.ID,
		Role:    user.Role,
	}, timeToLive)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := service.tokens.IssueRefreshToken(user.Username, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constants.TokenTypeBearer,
		ExpiresIn:    int64(timeToLive.Seconds()),
	}, nil
}

/*
Refresh mints a new access token from a refresh token.

Description: The lifetime follows the account's current stored role, so a
demotion takes effect at the next refresh. The refresh token itself is
returned to nobody and stays valid until it expires.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *AccessGrant: The new access token
  - error: ErrInvalidRefreshToken (also when the username now belongs to a
    different account) or internal failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (grant *AccessGrant, err error) {
	defer func() { service.record(EventRefresh, err) }()

	claims, err := service.tokens.DecodeRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken.Wrap(err)
	}

	user, err := service.users.FindByUsername(context, claims.Username())
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}

	// The username was freed and taken by another account
	if user.ID != claims.UserID {
		return nil, ErrInvalidRefreshToken
	}

	timeToLive := sec.AccessTTLFor(user.Role)
	accessToken, err := service.tokens.IssueAccessToken(sec.AccessClaims{
		Subject: user.Username,
		UserID:  user.ID,
		Role:    user.Role,
	}, timeToLive)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	return &AccessGrant{
		AccessToken: accessToken,
		TokenType:   constants.TokenTypeBearer,
		ExpiresIn:   int64(timeToLive.Seconds()),
	}, nil
}

/*
Logout revokes an access token for the rest of its lifetime.

Description: The HTTP route sits behind the guard, so token has already been
resolved once. A token that is already expired needs no revocation entry.

Parameters:
  - context: context.Context
  - token: string (the raw access token)

Returns:
  - error: ErrInvalidToken or revocation store failures
*/
func (service *Service) Logout(context context.Context, token string) (err error) {
	defer func() { service.record(EventLogout, err) }()

	claims, err := service.tokens.DecodeAccess(token)
	if err != nil {
		return ErrInvalidToken.Wrap(err)
	}

	remaining := claims.Remaining(service.tokens.Now())
	if remaining <= 0 {
		return nil
	}

	if err := service.revocations.Revoke(context, token, remaining); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	service.logger.InfoContext(context, "token_revoked",
		slog.String("subject", claims.Username()),
		slog.Duration("ttl", remaining),
	)

	return nil
}

// # Password Recovery

/*
ForgotPassword issues a short-lived password reset token.

Description: The reset token is an access-format JWT scoped with
action=reset_password; the guard refuses it as a general credential. It is
published for mail delivery and also returned to the caller.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *ResetGrant: The reset token and its expiry
  - error: ErrUserNotFound or internal failures
*/
func (service *Service) ForgotPassword(context context.Context, email string) (grant *ResetGrant, err error) {
	defer func() { service.record(EventForgotPassword, err) }()

	user, err := service.users.FindByEmail(context, normalize.Email(email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("auth_service_forgot_password_lookup_failed: %w", err)
	}

	resetToken, err := service.tokens.IssueAccessToken(sec.AccessClaims{
		Subject: user.Username,
		UserID:  user.ID,
		Role:    user.Role,
		Action:  sec.ActionResetPassword,
	}, ResetTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	now := service.tokens.Now().UTC()
	grant = &ResetGrant{
		ResetToken: resetToken,
		ExpiresAt:  now.Add(ResetTokenTTL),
	}

	service.logger.InfoContext(context, "auth_password_reset_requested", slog.String("user_id", user.ID))

	service.publish(context, constants.QueuePasswordResetRequested, PasswordResetRequested{
		Username:   user.Username,
		Email:      user.Email,
		ResetToken: resetToken,
		ExpiresAt:  grant.ExpiresAt,
		OccurredAt: now,
	})

	return grant, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: The token must decode, carry action=reset_password and not have
been used before. On success the password is replaced and the token is
revoked for its remaining lifetime so it cannot be replayed.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: Validation, ErrInvalidOrExpiredToken, ErrUserNotFound or storage failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) (err error) {
	defer func() { service.record(EventResetPassword, err) }()

	validator := &validate.Validator{}
	validatePassword(validator, FieldNewPassword, newPassword)
	if err := validator.Err(); err != nil {
		return err
	}

	claims, err := service.tokens.DecodeAccess(token)
	if err != nil {
		return ErrInvalidOrExpiredToken.Wrap(err)
	}
	if claims.Action != sec.ActionResetPassword {
		return ErrInvalidOrExpiredToken
	}

	used, err := service.revocations.IsRevoked(context, token)
	if err != nil {
		return fmt.Errorf("auth_service_reset_revocation_check_failed: %w", err)
	}
	if used {
		return ErrInvalidOrExpiredToken
	}

	user, err := service.users.FindByUsername(context, claims.Username())
	if err != nil {
		if apperr.IsNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("auth_service_reset_password_lookup_failed: %w", err)
	}
	if user.ID != claims.UserID {
		return ErrInvalidOrExpiredToken
	}

	hashedPassword, err := service.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(context, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// The password is already changed; a failed revocation only reopens the
	// reuse window until the token expires.
	if err := service.revocations.Revoke(context, token, claims.Remaining(service.tokens.Now())); err != nil {
		service.logger.ErrorContext(context, "auth_reset_token_revoke_failed", slog.Any("error", err))
	}

	service.logger.InfoContext(context, "auth_password_reset_completed", slog.String("user_id", user.ID))

	return nil
}
