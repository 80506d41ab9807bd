// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package status

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tasknest/internal/platform/request"
	"github.com/taibuivan/tasknest/internal/platform/respond"
)

// Handler implements the /status HTTP endpoints.
type Handler struct {
	statusService *Service
}

// NewHandler constructs a new status [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{statusService: service}
}

// Routes returns a [chi.Router] configured with the status endpoints.
//
// # Endpoints
//   - GET    /     : Any authenticated caller.
//   - POST   /     : Admin only.
//   - PUT    /{id} : Admin only.
//   - DELETE /{id} : Admin only; 409 while tasks use the status.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listStatuses)
	router.Post("/", handler.createStatus)
	router.Put("/{id}", handler.updateStatus)
	router.Delete("/{id}", handler.deleteStatus)

	return router
}

type statusRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (handler *Handler) listStatuses(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	statuses, err := handler.statusService.ListStatuses(request.Context(), principal)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, statuses)
}

/*
POST /api/v1/status.

Response:
  - 201: Status
  - 400: VALIDATION_ERROR
  - 403: FORBIDDEN
  - 409: CONFLICT: name already taken
*/
func (handler *Handler) createStatus(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input statusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.statusService.CreateStatus(request.Context(), principal, Input(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, status)
}

/*
PUT /api/v1/status/{id}.

Response:
  - 200: Status
  - 403: FORBIDDEN
  - 404: NOT_FOUND
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
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

	var input statusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.statusService.UpdateStatus(request.Context(), principal, id, Input(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

/*
DELETE /api/v1/status/{id}.

Response:
  - 204: No Content
  - 403: FORBIDDEN
  - 404: NOT_FOUND
  - 409: STATUS_IN_USE
*/
func (handler *Handler) deleteStatus(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.statusService.DeleteStatus(request.Context(), principal, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
