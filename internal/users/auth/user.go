// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements identity, authentication and authorization for Tasknest.

It owns the user account entity and every flow that creates or proves an
identity: registration, login, token refresh, logout, and password recovery.
It also owns the authorization guard that turns a bearer token into a
principal and the policy table that decides what that principal may do.

# Architecture

  - Service: the auth flows (Register, Login, Refresh, Logout, ForgotPassword, ResetPassword).
  - Guard: token to principal resolution and role checks, used by the HTTP middleware.
  - Policy: the declarative (resource, operation) rule table consulted by every resource service.
  - Repository: the users.account persistence contract and its Postgres implementation.

Cryptography (bcrypt, JWT) lives in the sec package and revocation storage in
the revocation package; both are injected through small interfaces.
*/
package auth

import (
	"time"

	"github.com/taibuivan/tasknest/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never serialized.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Principal returns the authenticated view of the account.
func (user *User) Principal() *sec.Principal {
	return &sec.Principal{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

// # Field Identifiers

// Field names used in validation errors and request payloads.
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldNewPassword  = "new_password"
	FieldRole         = "role"
	FieldToken        = "token"
	FieldRefreshToken = "refresh_token"
)
