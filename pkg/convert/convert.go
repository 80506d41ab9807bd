// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert turns raw query-string values into the optional filter fields
used by the list endpoints.

An empty input always means "filter not set" and yields a nil pointer. A
non-empty input that cannot be parsed is an error, so a typo in a filter never
silently widens a query.
*/
package convert

import (
	"fmt"
	"strconv"
	"strings"
)

// OptionalString returns nil for an empty (or whitespace-only) value.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// OptionalBool parses "true", "1", "false", "0" (and the other forms accepted
// by [strconv.ParseBool]).
func OptionalBool(s string) (*bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("convert: %q is not a boolean: %w", s, err)
	}
	return &v, nil
}
