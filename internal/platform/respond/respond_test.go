// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/respond"
)

/*
TestError_AppError writes the error envelope with the error's own status.
*/
func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "email", Message: "Must be a valid email address"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body respond.ErrorEnvelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "email", body.Details[0].Field)
}

/*
TestError_Wrapped finds an AppError behind fmt wrapping.
*/
func TestError_Wrapped(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.Join(errors.New("context"), apperr.NotFound("Task")))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestError_Unknown hides unexpected errors behind INTERNAL_ERROR.
*/
func TestError_Unknown(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "relation")
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

/*
TestOK wraps payloads in the data envelope.
*/
func TestOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"id":"1"}}`, recorder.Body.String())
}
