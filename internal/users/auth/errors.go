// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
)

// # Error Taxonomy
//
// Every sentinel is an [*apperr.AppError]; [errors.Is] matches on Code, so a
// copy carrying a cause (see [apperr.AppError.Wrap]) still matches.

var (
	ErrDuplicateUsername = apperr.New("DUPLICATE_USERNAME", "Username is already taken", http.StatusConflict)
	ErrDuplicateEmail    = apperr.New("DUPLICATE_EMAIL", "Email is already registered", http.StatusConflict)

	// ErrInvalidCredentials does not say which of username or password was wrong.
	ErrInvalidCredentials = apperr.New("INVALID_CREDENTIALS", "Invalid username or password", http.StatusUnauthorized)

	ErrInvalidToken        = apperr.New("INVALID_TOKEN", "Invalid or expired token", http.StatusUnauthorized)
	ErrInvalidRefreshToken = apperr.New("INVALID_REFRESH_TOKEN", "Invalid or expired refresh token", http.StatusUnauthorized)
	ErrTokenRevoked        = apperr.New("TOKEN_REVOKED", "Token has been revoked", http.StatusUnauthorized)

	// ErrPrincipalNotFound is returned by the guard when a valid token names
	// an account that no longer exists.
	ErrPrincipalNotFound = apperr.New("PRINCIPAL_NOT_FOUND", "Account no longer exists", http.StatusUnauthorized)

	// ErrUserNotFound is the same kind as ErrPrincipalNotFound, reported as
	// 404 by the anonymous password recovery flows.
	ErrUserNotFound = apperr.New("PRINCIPAL_NOT_FOUND", "User not found", http.StatusNotFound)

	ErrForbidden = apperr.New("FORBIDDEN", "Insufficient permissions", http.StatusForbidden)

	ErrInvalidOrExpiredToken = apperr.New("INVALID_OR_EXPIRED_TOKEN", "Invalid or expired reset token", http.StatusBadRequest)
)
