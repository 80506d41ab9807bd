// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert

import "encoding/json"

// Nullable is a JSON request field that tells apart three states: absent,
// explicitly null, and set to a value.
//
// The zero value is "absent". encoding/json only calls UnmarshalJSON for keys
// present in the body, including those whose value is null.
type Nullable[T any] struct {
	Present bool
	Value   *T
}

// UnmarshalJSON implements [json.Unmarshaler].
func (nullable *Nullable[T]) UnmarshalJSON(data []byte) error {
	nullable.Present = true
	nullable.Value = nil

	if string(data) == "null" {
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	nullable.Value = &value
	return nil
}

// IsNull reports whether the field was sent as an explicit null.
func (nullable Nullable[T]) IsNull() bool {
	return nullable.Present && nullable.Value == nil
}
