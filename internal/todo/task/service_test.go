// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/todo/list"
	"github.com/taibuivan/tasknest/internal/todo/task"
	"github.com/taibuivan/tasknest/internal/users/auth"
)

// # Fixtures

const (
	aliceList  = "0190d0c2-0000-7000-8000-0000000000a1"
	aliceOther = "0190d0c2-0000-7000-8000-0000000000a2"
	bobList    = "0190d0c2-0000-7000-8000-0000000000b1"
	valList    = "0190d0c2-0000-7000-8000-0000000000c1"
	missing    = "0190d0c2-0000-7000-8000-000000000000"
	pending    = "0190d0c2-0000-7000-8000-0000000000e1"
)

var principals = map[string]*sec.Principal{
	"alice": {ID: "0190d0c2-0000-7000-8000-00000000000a", Username: "alice", Role: sec.RoleUser},
	"bob":   {ID: "0190d0c2-0000-7000-8000-00000000000b", Username: "bob", Role: sec.RoleUser},
	"val":   {ID: "0190d0c2-0000-7000-8000-00000000000c", Username: "val", Role: sec.RoleViewer},
	"root":  {ID: "0190d0c2-0000-7000-8000-0000000000ff", Username: "root", Role: sec.RoleAdmin},
}

type lists map[string]*list.TodoList

func (l lists) FindByID(_ context.Context, id string) (*list.TodoList, error) {
	found, ok := l[id]
	if !ok {
		return nil, apperr.NotFound("List")
	}
	return found, nil
}

var fixtureLists = lists{
	aliceList:  {ID: aliceList, Title: "Groceries", OwnerID: principals["alice"].ID},
	aliceOther: {ID: aliceOther, Title: "Work", OwnerID: principals["alice"].ID},
	bobList:    {ID: bobList, Title: "Garden", OwnerID: principals["bob"].ID},
	valList:    {ID: valList, Title: "Reading", OwnerID: principals["val"].ID},
}

type memoryTasks struct {
	mu    sync.Mutex
	tasks map[string]*task.Task
	clock time.Time
}

func (repository *memoryTasks) List(_ context.Context, filter task.Filter, limit int) ([]*task.Task, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	result := make([]*task.Task, 0)
	for _, t := range repository.tasks {
		if filter.ListID != nil && *filter.ListID != t.ListID {
			continue
		}
		if filter.IsCompleted != nil && *filter.IsCompleted != t.IsCompleted {
			continue
		}
		if filter.ScopeOwnerID != nil && *filter.ScopeOwnerID != fixtureLists[t.ListID].OwnerID {
			continue
		}
		clone := *t
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return lo.Slice(result, 0, limit), nil
}

func (repository *memoryTasks) FindByID(_ context.Context, id string) (*task.Task, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	t, ok := repository.tasks[id]
	if !ok {
		return nil, apperr.NotFound("Task")
	}
	clone := *t
	return &clone, nil
}

func (repository *memoryTasks) Create(_ context.Context, t *task.Task) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.clock = repository.clock.Add(time.Second)
	t.CreatedAt = repository.clock
	clone := *t
	repository.tasks[t.ID] = &clone
	return nil
}

func (repository *memoryTasks) Update(_ context.Context, t *task.Task) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.tasks[t.ID]; !ok {
		return apperr.NotFound("Task")
	}
	clone := *t
	repository.tasks[t.ID] = &clone
	return nil
}

func (repository *memoryTasks) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.tasks[id]; !ok {
		return apperr.NotFound("Task")
	}
	delete(repository.tasks, id)
	return nil
}

func newService() (*task.Service, *memoryTasks) {
	repository := &memoryTasks{tasks: make(map[string]*task.Task), clock: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return task.NewService(repository, fixtureLists, auth.DefaultPolicy(), logger), repository
}

func mustCreate(t *testing.T, service *task.Service, owner, listID, title string) *task.Task {
	t.Helper()
	created, err := service.CreateTask(context.Background(), principals[owner], task.CreateInput{
		Title:    title,
		ListID:   listID,
		StatusID: pending,
	})
	require.NoError(t, err)
	return created
}

// # Tests

/*
TestTask_Ownership checks that a task is guarded by the owner of its list.

Bob cannot touch a task in Alice's list. An admin can.
*/
func TestTask_Ownership(t *testing.T) {
	service, repository := newService()
	ctx := context.Background()

	created := mustCreate(t, service, "alice", aliceList, "Buy milk")
	assert.Equal(t, aliceList, created.ListID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err := service.GetTask(ctx, principals["bob"], created.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = service.UpdateTask(ctx, principals["bob"], created.ID, task.UpdateInput{IsCompleted: lo.ToPtr(true)})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	err = service.DeleteTask(ctx, principals["bob"], created.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = service.CreateTask(ctx, principals["bob"], task.CreateInput{Title: "Intrude", ListID: aliceList, StatusID: pending})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	got, err := service.GetTask(ctx, principals["alice"], created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)

	updated, err := service.UpdateTask(ctx, principals["root"], created.ID, task.UpdateInput{IsCompleted: lo.ToPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.True(t, repository.tasks[created.ID].IsCompleted)

	require.NoError(t, service.DeleteTask(ctx, principals["root"], created.ID))
	_, err = service.GetTask(ctx, principals["alice"], created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestCreateTask_Rejected covers validation, missing lists and viewer callers.
*/
func TestCreateTask_Rejected(t *testing.T) {
	service, repository := newService()

	tests := []struct {
		name      string
		principal string
		input     task.CreateInput
		wantCode  string
	}{
		{"blank_title", "alice", task.CreateInput{Title: "  ", ListID: aliceList, StatusID: pending}, "VALIDATION_ERROR"},
		{"bad_list_id", "alice", task.CreateInput{Title: "x", ListID: "nope", StatusID: pending}, "VALIDATION_ERROR"},
		{"missing_status", "alice", task.CreateInput{Title: "x", ListID: aliceList}, "VALIDATION_ERROR"},
		{"unknown_list", "alice", task.CreateInput{Title: "x", ListID: missing, StatusID: pending}, "NOT_FOUND"},
		{"viewer_own_list", "val", task.CreateInput{Title: "x", ListID: valList, StatusID: pending}, auth.ErrForbidden.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateTask(context.Background(), principals[tt.principal], tt.input)
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}

	assert.Empty(t, repository.tasks)
}

/*
TestUpdateTask_MoveBetweenLists requires write access to both lists.
*/
func TestUpdateTask_MoveBetweenLists(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created := mustCreate(t, service, "alice", aliceList, "Plan sprint")

	_, err := service.UpdateTask(ctx, principals["alice"], created.ID, task.UpdateInput{ListID: lo.ToPtr(bobList)})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	moved, err := service.UpdateTask(ctx, principals["alice"], created.ID, task.UpdateInput{
		ListID: lo.ToPtr(aliceOther),
		Title:  lo.ToPtr("  Plan next sprint "),
	})
	require.NoError(t, err)
	assert.Equal(t, aliceOther, moved.ListID)
	assert.Equal(t, "Plan next sprint", moved.Title)

	_, err = service.UpdateTask(ctx, principals["alice"], created.ID, task.UpdateInput{ListID: lo.ToPtr(missing)})
	assert.True(t, apperr.IsNotFound(err))

	handedOver, err := service.UpdateTask(ctx, principals["root"], created.ID, task.UpdateInput{ListID: lo.ToPtr(bobList)})
	require.NoError(t, err)
	assert.Equal(t, bobList, handedOver.ListID)

	_, err = service.GetTask(ctx, principals["alice"], created.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)
	_, err = service.GetTask(ctx, principals["bob"], created.ID)
	assert.NoError(t, err)
}

/*
TestUpdateTask_DueDate sets a due date, leaves it untouched when omitted and
clears it on request.
*/
func TestUpdateTask_DueDate(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created := mustCreate(t, service, "alice", aliceList, "File taxes")
	assert.Nil(t, created.DueDate)

	due := time.Date(2026, 4, 15, 17, 0, 0, 0, time.UTC)
	updated, err := service.UpdateTask(ctx, principals["alice"], created.ID, task.UpdateInput{DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	assert.True(t, due.Equal(*updated.DueDate))

	again, err := service.UpdateTask(ctx, principals["alice"], created.ID, task.UpdateInput{Description: lo.ToPtr("forms")})
	require.NoError(t, err)
	require.NotNil(t, again.DueDate)
	assert.Equal(t, "forms", again.Description)

	_, err = service.UpdateTask(ctx, principals["alice"], created.ID, task.UpdateInput{StatusID: lo.ToPtr("green")})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.UpdateTask(ctx, principals["alice"], created.ID, task.UpdateInput{DueDate: &due, ClearDueDate: true})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	cleared, err := service.UpdateTask(ctx, principals["alice"], created.ID, task.UpdateInput{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)
	assert.Equal(t, "forms", cleared.Description)

	stored, err := service.GetTask(ctx, principals["alice"], created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DueDate)
}

/*
TestListTasks_Scope limits non-admins to tasks in their own lists.
*/
func TestListTasks_Scope(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	mustCreate(t, service, "alice", aliceList, "a1")
	mustCreate(t, service, "alice", aliceOther, "a2")
	done := mustCreate(t, service, "bob", bobList, "b1")
	_, err := service.UpdateTask(ctx, principals["bob"], done.ID, task.UpdateInput{IsCompleted: lo.ToPtr(true)})
	require.NoError(t, err)
	mustCreate(t, service, "root", valList, "v1")

	titles := func(tasks []*task.Task) []string {
		return lo.Map(tasks, func(t *task.Task, _ int) string { return t.Title })
	}

	tests := []struct {
		name      string
		principal string
		filter    task.Filter
		want      []string
	}{
		{"alice_all", "alice", task.Filter{}, []string{"a2", "a1"}},
		{"alice_by_list", "alice", task.Filter{ListID: lo.ToPtr(aliceList)}, []string{"a1"}},
		{"alice_cannot_widen", "alice", task.Filter{ListID: lo.ToPtr(bobList)}, []string{}},
		{"viewer_reads_own", "val", task.Filter{}, []string{"v1"}},
		{"admin_completed", "root", task.Filter{IsCompleted: lo.ToPtr(true)}, []string{"b1"}},
		{"admin_all", "root", task.Filter{}, []string{"v1", "b1", "a2", "a1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ListTasks(ctx, principals[tt.principal], tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}

	_, err = service.ListTasks(ctx, nil, task.Filter{})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}
