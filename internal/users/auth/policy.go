// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"github.com/samber/lo"

	"github.com/taibuivan/tasknest/internal/platform/sec"
)

// # Resources & Operations

// Resource names a protected entity type.
type Resource string

const (
	ResourceUser   Resource = "user"
	ResourceList   Resource = "list"
	ResourceTask   Resource = "task"
	ResourceStatus Resource = "status"
)

// Operation names an action on a resource.
type Operation string

const (
	OperationRead   Operation = "read"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// # Rules

// Rule lists the non-admin roles admitted for one (resource, operation) pair.
//
// When OwnershipRequired is set the caller must also own the target, i.e.
// its ID must equal the owner ID the resource service resolved.
type Rule struct {
	Roles             []sec.UserRole
	OwnershipRequired bool
}

type permission struct {
	resource  Resource
	operation Operation
}

// Policy is the declarative authorization table. Admins bypass it.
// A pair with no rule is denied.
type Policy struct {
	rules map[permission]Rule
}

// NewPolicy returns an empty policy; every non-admin request is denied until
// rules are added with [Policy.Allow].
func NewPolicy() *Policy {
	return &Policy{rules: make(map[permission]Rule)}
}

// Allow sets the rule for (resource, operation) and returns the policy for chaining.
func (policy *Policy) Allow(resource Resource, operation Operation, rule Rule) *Policy {
	policy.rules[permission{resource, operation}] = rule
	return policy
}

// Rule returns the rule for (resource, operation).
func (policy *Policy) Rule(resource Resource, operation Operation) (Rule, bool) {
	rule, ok := policy.rules[permission{resource, operation}]
	return rule, ok
}

// DefaultPolicy is the Tasknest permission table.
//
//	resource  read           create/update/delete
//	user      user, viewer*  user*          (create: admin only)
//	list      user, viewer*  user*
//	task      user, viewer*  user*
//	status    user, viewer   admin only
//
// (*) ownership required. Viewers only ever appear in read rules.
func DefaultPolicy() *Policy {
	readers := []sec.UserRole{sec.RoleUser, sec.RoleViewer}
	writers := []sec.UserRole{sec.RoleUser}

	policy := NewPolicy().
		Allow(ResourceUser, OperationRead, Rule{Roles: readers, OwnershipRequired: true}).
		Allow(ResourceUser, OperationUpdate, Rule{Roles: writers, OwnershipRequired: true}).
		Allow(ResourceUser, OperationDelete, Rule{Roles: writers, OwnershipRequired: true}).
		Allow(ResourceStatus, OperationRead, Rule{Roles: readers})

	for _, resource := range []Resource{ResourceList, ResourceTask} {
		policy.Allow(resource, OperationRead, Rule{Roles: readers, OwnershipRequired: true})
		for _, operation := range []Operation{OperationCreate, OperationUpdate, OperationDelete} {
			policy.Allow(resource, operation, Rule{Roles: writers, OwnershipRequired: true})
		}
	}

	return policy
}

/*
Authorize decides whether principal may perform operation on resource.

Description: Admins are always allowed. Anyone else needs a rule for the pair
that lists their role, and, when the rule requires ownership, ownerID must
be their own ID.

Parameters:
  - principal: *sec.Principal (the resolved caller)
  - resource: Resource
  - operation: Operation
  - ownerID: string (owner of the target; ignored by rules without ownership)

Returns:
  - error: ErrForbidden when denied, nil when allowed
*/
func (policy *Policy) Authorize(principal *sec.Principal, resource Resource, operation Operation, ownerID string) error {
	if principal == nil {
		return ErrForbidden
	}
	if principal.IsAdmin() {
		return nil
	}

	rule, ok := policy.Rule(resource, operation)
	if !ok || !lo.Contains(rule.Roles, principal.Role) {
		return ErrForbidden
	}

	if rule.OwnershipRequired && (ownerID == "" || ownerID != principal.ID) {
		return ErrForbidden
	}

	return nil
}
