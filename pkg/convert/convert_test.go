// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasknest/pkg/convert"
)

/*
TestOptionalString treats blank input as an unset filter.
*/
func TestOptionalString(t *testing.T) {
	assert.Nil(t, convert.OptionalString(""))
	assert.Nil(t, convert.OptionalString("   "))

	got := convert.OptionalString(" alice ")
	require.NotNil(t, got)
	assert.Equal(t, "alice", *got)
}

/*
TestOptionalBool parses booleans and rejects anything else.
*/
func TestOptionalBool(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *bool
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"true", "true", lo.ToPtr(true), false},
		{"one", "1", lo.ToPtr(true), false},
		{"false", "false", lo.ToPtr(false), false},
		{"garbage", "yes please", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convert.OptionalBool(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestNullable tells an absent key, an explicit null and a value apart.
*/
func TestNullable(t *testing.T) {
	type payload struct {
		Due convert.Nullable[time.Time] `json:"due"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantNull    bool
	}{
		{"absent", `{}`, false, false},
		{"null", `{"due":null}`, true, true},
		{"value", `{"due":"2026-05-01T08:30:00Z"}`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &decoded))
			assert.Equal(t, tt.wantPresent, decoded.Due.Present)
			assert.Equal(t, tt.wantNull, decoded.Due.IsNull())
			assert.Equal(t, tt.wantPresent && !tt.wantNull, decoded.Due.Value != nil)
		})
	}

	var decoded payload
	assert.Error(t, json.Unmarshal([]byte(`{"due":"tomorrow"}`), &decoded))
}
