// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// ResetTokenTTL is how long a password reset token stays usable.
	ResetTokenTTL = 15 * time.Minute

	// MinPasswordLength is the shortest password accepted at registration and reset.
	MinPasswordLength = 8

	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72

	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxEmailLength    = 254
)

// # Auth Events

// Event names used for metrics labels.
const (
	EventRegister       = "register"
	EventLogin          = "login"
	EventRefresh        = "refresh"
	EventLogout         = "logout"
	EventForgotPassword = "forgot_password"
	EventResetPassword  = "reset_password"
)
