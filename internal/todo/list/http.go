// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tasknest/internal/platform/request"
	"github.com/taibuivan/tasknest/internal/platform/respond"
	"github.com/taibuivan/tasknest/internal/platform/validate"
	"github.com/taibuivan/tasknest/pkg/convert"
)

// Handler implements the /lists HTTP endpoints.
type Handler struct {
	listService *Service
}

// NewHandler constructs a new list [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{listService: service}
}

// Routes returns a [chi.Router] configured with the list endpoints.
//
// # Endpoints
//   - POST   /     : Create a list (admins may set owner_username).
//   - GET    /     : Filters: id, owner_id, username, email.
//   - GET    /{id} : One list.
//   - PUT    /{id} : Partial update.
//   - DELETE /{id} : Delete with its tasks.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createList)
	router.Get("/", handler.listLists)
	router.Get("/{id}", handler.getList)
	router.Put("/{id}", handler.updateList)
	router.Delete("/{id}", handler.deleteList)

	return router
}

type createListRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	OwnerUsername string `json:"owner_username"`
}

type updateListRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

/*
POST /api/v1/lists.

Response:
  - 201: TodoList
  - 400: VALIDATION_ERROR
  - 403: FORBIDDEN: owner_username set by a non-admin, or a viewer caller
  - 404: NOT_FOUND: owner_username does not exist
*/
func (handler *Handler) createList(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createListRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.listService.CreateList(request.Context(), principal, CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, list)
}

/*
GET /api/v1/lists.

Response:
  - 200: []TodoList
  - 400: VALIDATION_ERROR: id or owner_id is not a UUID
*/
func (handler *Handler) listLists(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		ID:       convert.OptionalString(requestutil.Query(request, FieldID)),
		OwnerID:  convert.OptionalString(requestutil.Query(request, FieldOwnerID)),
		Username: convert.OptionalString(requestutil.Query(request, FieldUsername)),
		Email:    convert.OptionalString(requestutil.Query(request, FieldEmail)),
	}

	validator := &validate.Validator{}
	if filter.ID != nil {
		validator.UUID(FieldID, *filter.ID)
	}
	if filter.OwnerID != nil {
		validator.UUID(FieldOwnerID, *filter.OwnerID)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lists, err := handler.listService.ListLists(request.Context(), principal, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lists)
}

func (handler *Handler) getList(writer http.ResponseWriter, request *http.Request) {
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

	list, err := handler.listService.GetList(request.Context(), principal, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

/*
PUT /api/v1/lists/{id}.

Response:
  - 200: TodoList
  - 403: FORBIDDEN
  - 404: NOT_FOUND
*/
func (handler *Handler) updateList(writer http.ResponseWriter, request *http.Request) {
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

	var input updateListRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.listService.UpdateList(request.Context(), principal, id, UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

func (handler *Handler) deleteList(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.listService.DeleteList(request.Context(), principal, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
