// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/ctxutil"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/platform/validate"
	"github.com/taibuivan/tasknest/pkg/uuid"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter and requires it to be a UUID.

Returns:
  - string: The identifier
  - error: VALIDATION_ERROR naming the parameter if it is not a UUID
*/
func ID(request *http.Request, name string) (string, error) {
	id := chi.URLParam(request, name)
	if !uuid.Valid(id) {
		return "", validate.RequiredError(name, "Must be a valid UUID")
	}
	return id, nil
}

/*
Query retrieves a named query-string value from the request.
*/
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}

/*
Principal extracts the authenticated caller from the request context.

Returns nil if the request is not authenticated.
*/
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the caller.

Returns:
  - *sec.Principal: The authenticated caller
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {

	// Get the resolved caller
	principal := ctxutil.GetPrincipal(request.Context())

	// If the user is not authenticated, return an error
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return principal, nil
}

/*
AccessToken returns the raw bearer token presented with the request.
*/
func AccessToken(request *http.Request) string {
	return ctxutil.GetAccessToken(request.Context())
}
