// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize canonicalizes user-supplied identity strings before they
// are compared or stored.
//
// # Usage
//
// Usernames and emails are unique in storage. Two inputs that render the same
// (full-width letters, composed vs decomposed accents, stray whitespace) must
// map to the same stored value, otherwise the unique index can be bypassed.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Username returns the NFKC form of s with surrounding whitespace removed.
//
// Case is preserved: "Alice" and "alice" are distinct accounts.
func Username(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// Email returns the NFKC, case-folded form of s with surrounding whitespace removed.
//
// A [cases.Caser] is stateful, so each call builds its own.
func Email(s string) string {
	return cases.Fold().String(strings.TrimSpace(norm.NFKC.String(s)))
}
