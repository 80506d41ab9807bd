// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
)

/*
TestAppError_IsMatchesCode verifies that errors.Is compares kinds, not pointers.
*/
func TestAppError_IsMatchesCode(t *testing.T) {
	sentinel := apperr.New("TOKEN_REVOKED", "Token has been revoked", http.StatusUnauthorized)

	wrapped := fmt.Errorf("guard: %w", sentinel)
	assert.ErrorIs(t, wrapped, sentinel)

	sameKind := apperr.New("TOKEN_REVOKED", "different message", http.StatusBadRequest)
	assert.ErrorIs(t, sameKind, sentinel)

	assert.NotErrorIs(t, apperr.Forbidden("nope"), sentinel)
}

/*
TestAppError_Wrap keeps the sentinel immutable while exposing the cause.
*/
func TestAppError_Wrap(t *testing.T) {
	sentinel := apperr.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	cause := errors.New("signature mismatch")

	wrapped := sentinel.Wrap(cause)

	assert.Nil(t, sentinel.Cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.ErrorIs(t, wrapped, sentinel)

	ae := apperr.As(fmt.Errorf("outer: %w", wrapped))
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
	assert.Equal(t, "Invalid token", ae.Error())
}

/*
TestInternal_HidesCause checks the client-safe message of 5xx errors.
*/
func TestInternal_HidesCause(t *testing.T) {
	err := apperr.Internal(errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.NotContains(t, err.Error(), "relation")
	assert.True(t, apperr.IsAppError(err))
	assert.False(t, apperr.IsAppError(errors.New("plain")))
}

/*
TestIsNotFound matches NOT_FOUND regardless of resource name or wrapping.
*/
func TestIsNotFound(t *testing.T) {
	assert.True(t, apperr.IsNotFound(apperr.NotFound("User")))
	assert.True(t, apperr.IsNotFound(fmt.Errorf("repo: %w", apperr.NotFound("Task"))))
	assert.False(t, apperr.IsNotFound(apperr.Conflict("dup")))
	assert.False(t, apperr.IsNotFound(errors.New("plain")))
}
