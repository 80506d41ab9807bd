// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "github.com/samber/lo"

// # User Roles

// UserRole represents the authorization tier granted to an account.
//
// Roles are not ordered. Every protected operation declares the explicit set
// of roles it admits.
type UserRole string

const (
	// Unrestricted access to every resource.
	RoleAdmin UserRole = "admin"

	// Default role; may read and write resources it owns.
	RoleUser UserRole = "user"

	// Read-only access to resources it owns.
	RoleViewer UserRole = "viewer"
)

// DefaultRole is assigned when registration does not request one.
const DefaultRole = RoleUser

// AllRoles lists every known role.
var AllRoles = []UserRole{RoleAdmin, RoleUser, RoleViewer}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return lo.Contains(AllRoles, r)
}

// In reports whether r is one of roles.
func (r UserRole) In(roles ...UserRole) bool {
	return lo.Contains(roles, r)
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}
