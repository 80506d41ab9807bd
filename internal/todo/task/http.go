// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tasknest/internal/platform/request"
	"github.com/taibuivan/tasknest/internal/platform/respond"
	"github.com/taibuivan/tasknest/internal/platform/validate"
	"github.com/taibuivan/tasknest/pkg/convert"
)

// Handler implements the /tasks HTTP endpoints.
type Handler struct {
	taskService *Service
}

// NewHandler constructs a new task [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{taskService: service}
}

// Routes returns a [chi.Router] configured with the task endpoints.
//
// # Endpoints
//   - POST   /     : Create a task in a list.
//   - GET    /     : Filters: todo_list_id, is_completed.
//   - GET    /{id} : One task.
//   - PUT    /{id} : Partial update, may move the task to another list.
//   - DELETE /{id} : Delete.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createTask)
	router.Get("/", handler.listTasks)
	router.Get("/{id}", handler.getTask)
	router.Put("/{id}", handler.updateTask)
	router.Delete("/{id}", handler.deleteTask)

	return router
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
	ListID      string     `json:"todo_list_id"`
	StatusID    string     `json:"status_id"`
}

// updateTaskRequest omits absent keys; "due_date": null clears the due date.
type updateTaskRequest struct {
	Title       *string                     `json:"title"`
	Description *string                     `json:"description"`
	DueDate     convert.Nullable[time.Time] `json:"due_date"`
	IsCompleted *bool                       `json:"is_completed"`
	ListID      *string                     `json:"todo_list_id"`
	StatusID    *string                     `json:"status_id"`
}

func (input updateTaskRequest) toInput() UpdateInput {
	return UpdateInput{
		Title:        input.Title,
		Description:  input.Description,
		DueDate:      input.DueDate.Value,
		ClearDueDate: input.DueDate.IsNull(),
		IsCompleted:  input.IsCompleted,
		ListID:       input.ListID,
		StatusID:     input.StatusID,
	}
}

/*
POST /api/v1/tasks.

Response:
  - 201: Task
  - 400: VALIDATION_ERROR
  - 403: FORBIDDEN: the list belongs to someone else
  - 404: NOT_FOUND: the list does not exist
  - 422: UNPROCESSABLE: the status does not exist
*/
func (handler *Handler) createTask(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.CreateTask(request.Context(), principal, CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, task)
}

/*
GET /api/v1/tasks.

Response:
  - 200: []Task
  - 400: VALIDATION_ERROR: todo_list_id is not a UUID or is_completed is not a boolean
*/
func (handler *Handler) listTasks(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		ListID: convert.OptionalString(requestutil.Query(request, FieldListID)),
	}

	validator := &validate.Validator{}
	if filter.ListID != nil {
		validator.UUID(FieldListID, *filter.ListID)
	}
	completed, err := convert.OptionalBool(requestutil.Query(request, FieldIsCompleted))
	validator.Custom(FieldIsCompleted, err != nil, "Must be true or false")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}
	filter.IsCompleted = completed

	tasks, err := handler.taskService.ListTasks(request.Context(), principal, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tasks)
}

func (handler *Handler) getTask(writer http.ResponseWriter, request *http.Request) {
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

	task, err := handler.taskService.GetTask(request.Context(), principal, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

/*
PUT /api/v1/tasks/{id}.

Response:
  - 200: Task
  - 403: FORBIDDEN: either the current or the target list belongs to someone else
  - 404: NOT_FOUND
*/
func (handler *Handler) updateTask(writer http.ResponseWriter, request *http.Request) {
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

	var input updateTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.UpdateTask(request.Context(), principal, id, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

func (handler *Handler) deleteTask(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.taskService.DeleteTask(request.Context(), principal, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
