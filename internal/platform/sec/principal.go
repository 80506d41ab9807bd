// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Principal is the authenticated caller of a request.
//
// It is always built from the stored account, never from token claims alone,
// so Role reflects the current role even if it changed after the token was issued.
type Principal struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (principal *Principal) IsAdmin() bool {
	return principal != nil && principal.Role == RoleAdmin
}
