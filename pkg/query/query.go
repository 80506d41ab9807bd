// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package query assembles the optional WHERE clauses of list queries.

Filters arrive as nil-able values; only the ones that are set become
predicates, each bound to the next positional parameter ($1, $2, ...).

Usage:

	var conditions query.Conditions
	conditions.Equal("username", filter.Username)
	conditions.Equal("email", filter.Email)

	sql := "SELECT ... FROM users.account" + conditions.Where() +
		" ORDER BY createdat LIMIT " + conditions.Bind(limit)
	rows, err := pool.Query(ctx, sql, conditions.Args()...)
*/
package query

import (
	"fmt"
	"strings"
)

// Conditions collects "column = $n" predicates and their bound arguments.
// The zero value is ready to use.
type Conditions struct {
	clauses []string
	args    []any
}

// Bind appends value to the argument list and returns its placeholder.
func (conditions *Conditions) Bind(value any) string {
	conditions.args = append(conditions.args, value)
	return fmt.Sprintf("$%d", len(conditions.args))
}

// Add appends a raw predicate. Use [Conditions.Bind] for its placeholders.
func (conditions *Conditions) Add(predicate string) *Conditions {
	conditions.clauses = append(conditions.clauses, predicate)
	return conditions
}

// Equal adds "column = $n" when value is non-nil.
func Equal[T any](conditions *Conditions, column string, value *T) *Conditions {
	if value == nil {
		return conditions
	}
	return conditions.Add(column + " = " + conditions.Bind(*value))
}

// Equal adds "column = $n" when value is non-nil.
func (conditions *Conditions) Equal(column string, value *string) *Conditions {
	return Equal(conditions, column, value)
}

// Where renders " WHERE a AND b", or an empty string when nothing was added.
func (conditions *Conditions) Where() string {
	if len(conditions.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions.clauses, " AND ")
}

// Args returns the bound arguments in placeholder order.
func (conditions *Conditions) Args() []any {
	return conditions.args
}
