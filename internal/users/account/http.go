// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tasknest/internal/platform/request"
	"github.com/taibuivan/tasknest/internal/platform/respond"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/platform/validate"
	"github.com/taibuivan/tasknest/pkg/convert"
)

// Handler implements the HTTP layer for account administration.
//
// # Security
//
// Every route expects an authenticated principal; mount it behind RequireAuth.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAccounts)
	router.Get("/{id}", handler.getAccount)
	router.Put("/{id}", handler.updateAccount)
	router.Delete("/{id}", handler.deleteAccount)

	return router
}

/*
GET /api/v1/users.

Description: Lists accounts. Filters: id, username, email (exact match).

Response:
  - 200: []User
  - 400: VALIDATION_ERROR: id is not a UUID
*/
func (handler *Handler) listAccounts(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		ID:       convert.OptionalString(requestutil.Query(request, FieldID)),
		Username: convert.OptionalString(requestutil.Query(request, FieldUsername)),
		Email:    convert.OptionalString(requestutil.Query(request, FieldEmail)),
	}
	if filter.ID != nil {
		if err := (&validate.Validator{}).UUID(FieldID, *filter.ID).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	users, err := handler.accountService.ListAccounts(request.Context(), principal, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

/*
GET /api/v1/users/{id}.

Response:
  - 200: User
  - 403: FORBIDDEN: not the caller's own account
  - 404: NOT_FOUND
*/
func (handler *Handler) getAccount(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetAccount(request.Context(), principal, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateAccountRequest defines the expected JSON payload for account updates.
type updateAccountRequest struct {
	Username *string       `json:"username"`
	Email    *string       `json:"email"`
	Role     *sec.UserRole `json:"role"`
}

/*
PUT /api/v1/users/{id}.

Description: Applies partial updates. Omitted fields keep their value.

Response:
  - 200: User
  - 400: VALIDATION_ERROR
  - 403: FORBIDDEN: foreign account, or role change by a non-admin
  - 409: DUPLICATE_USERNAME / DUPLICATE_EMAIL
*/
func (handler *Handler) updateAccount(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateAccountRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateAccount(request.Context(), principal, id, UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{id}.

Response:
  - 204: No Content
  - 403: FORBIDDEN
  - 404: NOT_FOUND
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), principal, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
