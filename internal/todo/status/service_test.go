// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package status_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/todo/status"
	"github.com/taibuivan/tasknest/internal/users/auth"
)

// memoryStatuses mirrors the todo.status constraints: unique names and
// RESTRICT deletes for statuses listed in inUse.
type memoryStatuses struct {
	mu       sync.Mutex
	statuses map[string]*status.Status
	inUse    map[string]bool
}

func newMemoryStatuses() *memoryStatuses {
	return &memoryStatuses{statuses: make(map[string]*status.Status), inUse: make(map[string]bool)}
}

func (repository *memoryStatuses) List(_ context.Context, limit int) ([]*status.Status, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	result := lo.MapToSlice(repository.statuses, func(_ string, s *status.Status) *status.Status {
		clone := *s
		return &clone
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return lo.Slice(result, 0, limit), nil
}

func (repository *memoryStatuses) FindByID(_ context.Context, id string) (*status.Status, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	s, ok := repository.statuses[id]
	if !ok {
		return nil, apperr.NotFound("Status")
	}
	clone := *s
	return &clone, nil
}

func (repository *memoryStatuses) save(s *status.Status) error {
	for id, existing := range repository.statuses {
		if id != s.ID && existing.Name == s.Name {
			return apperr.Conflict("Status already exists")
		}
	}
	clone := *s
	repository.statuses[s.ID] = &clone
	return nil
}

func (repository *memoryStatuses) Create(_ context.Context, s *status.Status) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.save(s)
}

func (repository *memoryStatuses) Update(_ context.Context, s *status.Status) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if _, ok := repository.statuses[s.ID]; !ok {
		return apperr.NotFound("Status")
	}
	return repository.save(s)
}

func (repository *memoryStatuses) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if _, ok := repository.statuses[id]; !ok {
		return apperr.NotFound("Status")
	}
	if repository.inUse[id] {
		return status.ErrStatusInUse
	}
	delete(repository.statuses, id)
	return nil
}

var (
	admin  = &sec.Principal{ID: "0190d0c2-0000-7000-8000-0000000000ff", Role: sec.RoleAdmin}
	user   = &sec.Principal{ID: "0190d0c2-0000-7000-8000-00000000000a", Role: sec.RoleUser}
	viewer = &sec.Principal{ID: "0190d0c2-0000-7000-8000-00000000000b", Role: sec.RoleViewer}
)

func newService() (*status.Service, *memoryStatuses) {
	repository := newMemoryStatuses()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return status.NewService(repository, auth.DefaultPolicy(), logger), repository
}

/*
TestStatus_AdminWrites lets admins manage statuses and everyone else read them.
*/
func TestStatus_AdminWrites(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.CreateStatus(ctx, admin, status.Input{Name: lo.ToPtr(" pendiente "), Color: lo.ToPtr("Yellow")})
	require.NoError(t, err)
	assert.Equal(t, "pendiente", created.Name)
	assert.Equal(t, "yellow", created.Color)

	_, err = service.CreateStatus(ctx, user, status.Input{Name: lo.ToPtr("mine")})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = service.UpdateStatus(ctx, viewer, created.ID, status.Input{Color: lo.ToPtr("red")})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	assert.ErrorIs(t, service.DeleteStatus(ctx, user, created.ID), auth.ErrForbidden)

	for _, principal := range []*sec.Principal{admin, user, viewer} {
		statuses, err := service.ListStatuses(ctx, principal)
		require.NoError(t, err)
		assert.Len(t, statuses, 1)
	}

	_, err = service.ListStatuses(ctx, nil)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

/*
TestStatus_Validation rejects empty names and malformed colors.
*/
func TestStatus_Validation(t *testing.T) {
	service, _ := newService()

	tests := []struct {
		name  string
		input status.Input
		field string
	}{
		{"missing_name", status.Input{}, "name"},
		{"blank_name", status.Input{Name: lo.ToPtr("   ")}, "name"},
		{"bad_color", status.Input{Name: lo.ToPtr("done"), Color: lo.ToPtr("#12")}, "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateStatus(context.Background(), admin, tt.input)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}

	created, err := service.CreateStatus(context.Background(), admin, status.Input{Name: lo.ToPtr("no color")})
	require.NoError(t, err)
	assert.Empty(t, created.Color)
}

/*
TestStatus_UpdateAndConflicts applies partial updates and surfaces name clashes.
*/
func TestStatus_UpdateAndConflicts(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	pending, err := service.CreateStatus(ctx, admin, status.Input{Name: lo.ToPtr("pendiente"), Color: lo.ToPtr("yellow")})
	require.NoError(t, err)
	_, err = service.CreateStatus(ctx, admin, status.Input{Name: lo.ToPtr("completada"), Color: lo.ToPtr("green")})
	require.NoError(t, err)

	updated, err := service.UpdateStatus(ctx, admin, pending.ID, status.Input{Color: lo.ToPtr("#ffcc00")})
	require.NoError(t, err)
	assert.Equal(t, "pendiente", updated.Name)
	assert.Equal(t, "#ffcc00", updated.Color)

	_, err = service.UpdateStatus(ctx, admin, pending.ID, status.Input{Name: lo.ToPtr("completada")})
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.UpdateStatus(ctx, admin, "0190d0c2-0000-7000-8000-000000000999", status.Input{Color: lo.ToPtr("red")})
	assert.True(t, apperr.IsNotFound(err))

	statuses, err := service.ListStatuses(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []string{"completada", "pendiente"}, lo.Map(statuses, func(s *status.Status, _ int) string { return s.Name }))
}

/*
TestStatus_DeleteInUse refuses to delete a status that tasks reference.
*/
func TestStatus_DeleteInUse(t *testing.T) {
	service, repository := newService()
	ctx := context.Background()

	created, err := service.CreateStatus(ctx, admin, status.Input{Name: lo.ToPtr("en progreso"), Color: lo.ToPtr("blue")})
	require.NoError(t, err)

	repository.inUse[created.ID] = true
	err = service.DeleteStatus(ctx, admin, created.ID)
	assert.ErrorIs(t, err, status.ErrStatusInUse)
	assert.Equal(t, 409, apperr.As(err).HTTPStatus)

	repository.inUse[created.ID] = false
	require.NoError(t, service.DeleteStatus(ctx, admin, created.ID))
	assert.True(t, apperr.IsNotFound(service.DeleteStatus(ctx, admin, created.ID)))
}
