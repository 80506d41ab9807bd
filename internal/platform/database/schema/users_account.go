// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns the Postgres stores query.
//
// Queries are assembled from these descriptors so a column rename touches one
// file instead of every repository.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	Password  string
	Role      string
	CreatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Username:  "username",
	Email:     "email",
	Password:  "passwordhash",
	Role:      "role",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.Password, t.Role, t.CreatedAt}
}

// Unique constraint names, used to tell duplicate usernames from duplicate emails.
const (
	UserAccountUsernameKey = "account_username_key"
	UserAccountEmailKey    = "account_email_key"
)
