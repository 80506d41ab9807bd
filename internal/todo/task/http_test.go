// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasknest/internal/platform/ctxutil"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/todo/task"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
	Code string          `json:"code"`
}

// newTaskServer mounts the handler behind a stub that authenticates as principal.
func newTaskServer(service *task.Service, principal *sec.Principal) http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithPrincipal(request.Context(), principal)))
		})
	})
	router.Mount("/tasks", task.NewHandler(service).Routes())
	return router
}

func send(t *testing.T, handler http.Handler, method, path, body string) (int, envelope) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var decoded envelope
	if recorder.Code != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&decoded))
	}
	return recorder.Code, decoded
}

/*
TestHTTP_TaskLifecycle drives create, filter, update and delete over HTTP.
*/
func TestHTTP_TaskLifecycle(t *testing.T) {
	service, _ := newService()
	alice := newTaskServer(service, principals["alice"])
	bob := newTaskServer(service, principals["bob"])

	code, body := send(t, alice, http.MethodPost, "/tasks",
		`{"title":"Buy milk","todo_list_id":"`+aliceList+`","status_id":"`+pending+`","due_date":"2026-03-02T09:00:00Z"}`)
	require.Equal(t, http.StatusCreated, code)

	var created task.Task
	require.NoError(t, json.Unmarshal(body.Data, &created))
	require.NotNil(t, created.DueDate)
	assert.Equal(t, 9, created.DueDate.Hour())

	code, body = send(t, bob, http.MethodGet, "/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", body.Code)

	code, _ = send(t, alice, http.MethodPut, "/tasks/"+created.ID, `{"is_completed":true}`)
	assert.Equal(t, http.StatusOK, code)

	code, body = send(t, alice, http.MethodGet, "/tasks?is_completed=true&todo_list_id="+aliceList, "")
	require.Equal(t, http.StatusOK, code)
	var listed []task.Task
	require.NoError(t, json.Unmarshal(body.Data, &listed))
	require.Len(t, listed, 1)
	assert.True(t, listed[0].IsCompleted)

	code, _ = send(t, alice, http.MethodDelete, "/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, code)
}

/*
TestHTTP_TaskClearDueDate distinguishes an absent due_date from an explicit null.
*/
func TestHTTP_TaskClearDueDate(t *testing.T) {
	service, _ := newService()
	alice := newTaskServer(service, principals["alice"])

	code, body := send(t, alice, http.MethodPost, "/tasks",
		`{"title":"Dentist","todo_list_id":"`+aliceList+`","status_id":"`+pending+`","due_date":"2026-05-01T08:30:00Z"}`)
	require.Equal(t, http.StatusCreated, code)
	var created task.Task
	require.NoError(t, json.Unmarshal(body.Data, &created))

	tests := []struct {
		name    string
		body    string
		wantDue bool
	}{
		{"absent_keeps", `{"title":"Dentist at noon"}`, true},
		{"reschedule", `{"due_date":"2026-05-02T12:00:00Z"}`, true},
		{"null_clears", `{"due_date":null}`, false},
		{"absent_after_clear", `{"is_completed":true}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := send(t, alice, http.MethodPut, "/tasks/"+created.ID, tt.body)
			require.Equal(t, http.StatusOK, code)

			var updated task.Task
			require.NoError(t, json.Unmarshal(body.Data, &updated))
			assert.Equal(t, tt.wantDue, updated.DueDate != nil)
		})
	}
}

/*
TestHTTP_TaskBadInput rejects malformed filters and bodies with 400.
*/
func TestHTTP_TaskBadInput(t *testing.T) {
	service, _ := newService()
	alice := newTaskServer(service, principals["alice"])

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"bad_completed_filter", http.MethodGet, "/tasks?is_completed=maybe", ""},
		{"bad_list_filter", http.MethodGet, "/tasks?todo_list_id=42", ""},
		{"bad_id", http.MethodGet, "/tasks/42", ""},
		{"bad_json", http.MethodPost, "/tasks", `{"title":`},
		{"missing_fields", http.MethodPost, "/tasks", `{"title":"x"}`},
		{"bad_due_date", http.MethodPut, "/tasks/" + missing, `{"due_date":"tomorrow"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := send(t, alice, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, body.Code)
		})
	}
}
