// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/users/auth"
)

/*
TestDefaultPolicy exercises the permission table for every role.
*/
func TestDefaultPolicy(t *testing.T) {
	policy := auth.DefaultPolicy()

	const self = "0190d0c2-0000-7000-8000-000000000001"
	const other = "0190d0c2-0000-7000-8000-000000000002"

	admin := &sec.Principal{ID: "0190d0c2-0000-7000-8000-0000000000aa", Role: sec.RoleAdmin}
	user := &sec.Principal{ID: self, Role: sec.RoleUser}
	viewer := &sec.Principal{ID: self, Role: sec.RoleViewer}

	tests := []struct {
		name      string
		principal *sec.Principal
		resource  auth.Resource
		operation auth.Operation
		ownerID   string
		allowed   bool
	}{
		// Admins bypass the table, including pairs with no rule.
		{"admin_creates_user", admin, auth.ResourceUser, auth.OperationCreate, "", true},
		{"admin_deletes_foreign_task", admin, auth.ResourceTask, auth.OperationDelete, other, true},
		{"admin_writes_status", admin, auth.ResourceStatus, auth.OperationUpdate, "", true},

		// Users own their lists and tasks.
		{"user_reads_own_list", user, auth.ResourceList, auth.OperationRead, self, true},
		{"user_creates_own_list", user, auth.ResourceList, auth.OperationCreate, self, true},
		{"user_updates_own_task", user, auth.ResourceTask, auth.OperationUpdate, self, true},
		{"user_reads_foreign_list", user, auth.ResourceList, auth.OperationRead, other, false},
		{"user_deletes_foreign_task", user, auth.ResourceTask, auth.OperationDelete, other, false},
		{"user_unknown_owner", user, auth.ResourceTask, auth.OperationRead, "", false},

		// Accounts are self-service; creation is admin only.
		{"user_reads_self", user, auth.ResourceUser, auth.OperationRead, self, true},
		{"user_updates_other", user, auth.ResourceUser, auth.OperationUpdate, other, false},
		{"user_creates_user", user, auth.ResourceUser, auth.OperationCreate, "", false},

		// Statuses are readable by all, writable by admins only.
		{"user_reads_status", user, auth.ResourceStatus, auth.OperationRead, "", true},
		{"viewer_reads_status", viewer, auth.ResourceStatus, auth.OperationRead, "", true},
		{"user_creates_status", user, auth.ResourceStatus, auth.OperationCreate, "", false},

		// Viewers read their own data and never write.
		{"viewer_reads_own_task", viewer, auth.ResourceTask, auth.OperationRead, self, true},
		{"viewer_reads_foreign_task", viewer, auth.ResourceTask, auth.OperationRead, other, false},
		{"viewer_creates_own_list", viewer, auth.ResourceList, auth.OperationCreate, self, false},
		{"viewer_updates_self", viewer, auth.ResourceUser, auth.OperationUpdate, self, false},

		{"anonymous", nil, auth.ResourceStatus, auth.OperationRead, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Authorize(tt.principal, tt.resource, tt.operation, tt.ownerID)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, auth.ErrForbidden)
		})
	}
}

/*
TestPolicy_EmptyDeniesAll checks that an unconfigured policy denies non-admins.
*/
func TestPolicy_EmptyDeniesAll(t *testing.T) {
	policy := auth.NewPolicy()

	err := policy.Authorize(&sec.Principal{ID: "x", Role: sec.RoleUser}, auth.ResourceList, auth.OperationRead, "x")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	err = policy.Authorize(&sec.Principal{Role: sec.RoleAdmin}, auth.ResourceList, auth.OperationRead, "")
	assert.NoError(t, err)

	policy.Allow(auth.ResourceList, auth.OperationRead, auth.Rule{Roles: []sec.UserRole{sec.RoleUser}})
	err = policy.Authorize(&sec.Principal{ID: "x", Role: sec.RoleUser}, auth.ResourceList, auth.OperationRead, "someone-else")
	assert.NoError(t, err, "rule without ownership ignores the owner")

	rule, ok := policy.Rule(auth.ResourceList, auth.OperationRead)
	assert.True(t, ok)
	assert.False(t, rule.OwnershipRequired)
}
