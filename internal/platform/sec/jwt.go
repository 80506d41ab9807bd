// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. The auth package consumes it through small interfaces so
// services can be tested without real keys or clocks.
//
// # Token Kinds
//
// Access and refresh tokens are both HS256 JWTs signed with the same secret.
// The "typ" claim keeps them apart: a refresh token is never accepted where an
// access token is expected, and vice versa. Access tokens may carry an
// "action" claim that scopes them to a single purpose (password reset).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/tasknest/pkg/uuid"
)

// # Token Types & Actions

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// ActionResetPassword scopes an access-format token to the reset-password flow.
const ActionResetPassword = "reset_password"

// # Role TTLs

const (
	// AdminAccessTTL is the access-token lifetime for admins.
	AdminAccessTTL = 60 * time.Minute

	// ViewerAccessTTL is the access-token lifetime for viewers.
	ViewerAccessTTL = 15 * time.Minute

	// DefaultAccessTTL applies to users and any other role.
	DefaultAccessTTL = 30 * time.Minute
)

// ErrInvalidToken is returned (wrapped with the cause) by every decode failure.
var ErrInvalidToken = errors.New("sec: invalid token")

// AccessTTLFor returns the access-token lifetime granted to role.
func AccessTTLFor(role UserRole) time.Duration {
	switch role {
	case RoleAdmin:
		return AdminAccessTTL
	case RoleViewer:
		return ViewerAccessTTL
	default:
		return DefaultAccessTTL
	}
}

// # Claims

// Claims is the payload of every token issued by [TokenService].
//
// The subject ("sub") is the username and "uid" the account ID, so a token
// outlives neither a rename nor a re-registration of the same username.
// "exp" and "iat" are epoch seconds.
// "jti" is random, so two tokens minted in the same second for the same
// account are still distinct and revoking one leaves the other valid.
type Claims struct {
	jwt.RegisteredClaims

	UserID string    `json:"uid"`
	Role   UserRole  `json:"role"`
	Type   TokenType `json:"typ"`
	Action string    `json:"action,omitempty"`
}

// Username returns the subject claim.
func (claims *Claims) Username() string {
	return claims.Subject
}

// Remaining returns the time left until expiry at now. It is zero or negative
// for tokens without an expiry or already expired.
func (claims *Claims) Remaining(now time.Time) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	return claims.ExpiresAt.Sub(now)
}

// AccessClaims is the caller-supplied part of an access token.
type AccessClaims struct {
	Subject string
	UserID  string
	Role    UserRole
	Action  string
}

// # Token Service

// TokenService issues and verifies HS256 tokens.
type TokenService struct {
	secret     []byte
	issuer     string
	refreshTTL time.Duration
	now        func() time.Time
}

// Option customizes a [TokenService].
type Option func(*TokenService)

// WithClock replaces the wall clock used for "iat", "exp" and validation.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService.
//
// The secret is copied so later mutation by the caller has no effect.
func NewTokenService(secret []byte, issuer string, refreshTTL time.Duration, options ...Option) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	if refreshTTL <= 0 {
		return nil, errors.New("sec: refresh token TTL must be positive")
	}

	service := &TokenService{
		secret:     append([]byte(nil), secret...),
		issuer:     issuer,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, option := range options {
		option(service)
	}

	return service, nil
}

// Now returns the service clock's current time.
func (service *TokenService) Now() time.Time {
	return service.now()
}

// IssueAccessToken signs an access token for claims that expires after timeToLive.
func (service *TokenService) IssueAccessToken(claims AccessClaims, timeToLive time.Duration) (string, error) {
	if timeToLive <= 0 {
		return "", fmt.Errorf("sec: access token TTL must be positive, got %s", timeToLive)
	}
	return service.sign(claims, TokenTypeAccess, timeToLive)
}

// IssueRefreshToken signs a refresh token with the service's fixed refresh TTL.
// Refresh tokens never carry an action.
func (service *TokenService) IssueRefreshToken(subject, userID string, role UserRole) (string, error) {
	return service.sign(AccessClaims{Subject: subject, UserID: userID, Role: role}, TokenTypeRefresh, service.refreshTTL)
}

// sign builds and signs the claims common to both token kinds.
func (service *TokenService) sign(input AccessClaims, tokenType TokenType, timeToLive time.Duration) (string, error) {
	currentTime := service.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   input.Subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: input.UserID,
		Role:   input.Role,
		Type:   tokenType,
		Action: input.Action,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Decode verifies the signature, algorithm, issuer and expiry of tokenString
// and returns its claims. It does not consult revocation.
//
// A token whose "exp" is at or before the current time is invalid.
func (service *TokenService) Decode(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return service.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}

// DecodeAccess decodes tokenString and requires it to be an access token.
func (service *TokenService) DecodeAccess(tokenString string) (*Claims, error) {
	return service.decodeType(tokenString, TokenTypeAccess)
}

// DecodeRefresh decodes tokenString and requires it to be a refresh token.
func (service *TokenService) DecodeRefresh(tokenString string) (*Claims, error) {
	return service.decodeType(tokenString, TokenTypeRefresh)
}

func (service *TokenService) decodeType(tokenString string, want TokenType) (*Claims, error) {
	claims, err := service.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != want {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, want, claims.Type)
	}
	return claims, nil
}
