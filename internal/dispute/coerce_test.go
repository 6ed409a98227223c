// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package dispute

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"rfc3339 utc", "2024-03-01T12:30:45Z", time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC).Local().Format(EditTimeLayout)},
		{"rfc3339 with offset", "2024-03-01T12:30:45+02:00", time.Date(2024, 3, 1, 10, 30, 45, 0, time.UTC).Local().Format(EditTimeLayout)},
		{"fractional seconds", "2024-03-01T12:30:45.123Z", time.Date(2024, 3, 1, 12, 30, 45, 123000000, time.UTC).Local().Format(EditTimeLayout)},
		{"date only", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Local().Format(EditTimeLayout)},
		{"null", nil, ""},
		{"empty string", "", ""},
		{"whitespace", "   ", ""},
		{"garbage", "not-a-date", ""},
		{"wrong type number", 1709294400.0, ""},
		{"wrong type bool", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.raw))
		})
	}
}

func TestDateRoundTrip(t *testing.T) {
	// denormalize(normalize(t)) must equal t to second precision.
	wire := []string{
		"2024-03-01T12:30:45Z",
		"2025-12-31T23:59:59Z",
		"2024-06-15T08:00:00+05:30",
		"2024-03-01T12:30:45.987Z",
	}

	for _, iso := range wire {
		t.Run(iso, func(t *testing.T) {
			edit := NormalizeDate(iso)
			require.NotEmpty(t, edit)

			back := DenormalizeDate(edit)
			require.NotNil(t, back)

			want, err := time.Parse(time.RFC3339Nano, iso)
			require.NoError(t, err)
			got, err := time.Parse(time.RFC3339, *back)
			require.NoError(t, err)

			assert.True(t, want.Truncate(time.Second).Equal(got),
				"round-trip drifted: %s -> %s -> %s", iso, edit, *back)
		})
	}
}

func TestDenormalizeDateNull(t *testing.T) {
	assert.Nil(t, DenormalizeDate(""))
	assert.Nil(t, DenormalizeDate("   "))
	assert.Nil(t, DenormalizeDate("garbage"))
}

func TestDenormalizeDateShortForm(t *testing.T) {
	// datetime-local inputs may omit seconds
	got := DenormalizeDate("2024-03-01T09:15")
	require.NotNil(t, got)
	parsed, err := time.Parse(time.RFC3339, *got)
	require.NoError(t, err)
	want := time.Date(2024, 3, 1, 9, 15, 0, 0, time.Local)
	assert.True(t, want.Equal(parsed))
}

func TestParseEditTime(t *testing.T) {
	_, ok := ParseEditTime("")
	assert.False(t, ok)

	_, ok = ParseEditTime("nope")
	assert.False(t, ok)

	got, ok := ParseEditTime("2024-03-01T09:15:30")
	require.True(t, ok)
	assert.True(t, time.Date(2024, 3, 1, 9, 15, 30, 0, time.Local).Equal(got))
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name  string
		raw   any
		valid bool
		want  string
	}{
		{"json number", 250.5, true, "250.5"},
		{"numeric string", "250.00", true, "250"},
		{"negative allowed", "-10.25", true, "-10.25"},
		{"int", 42, true, "42"},
		{"json.Number", json.Number("19.99"), true, "19.99"},
		{"null", nil, false, ""},
		{"empty string", "", false, ""},
		{"whitespace", "  ", false, ""},
		{"non-numeric string", "abc", false, ""},
		{"bool", true, false, ""},
		{"slice", []any{1}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAmount(tt.raw)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				want, err := decimal.NewFromString(tt.want)
				require.NoError(t, err)
				assert.True(t, want.Equal(got.Decimal), "got %s", got.Decimal)
			}
		})
	}
}

func TestDenormalizeAmount(t *testing.T) {
	assert.Nil(t, DenormalizeAmount(decimal.NullDecimal{}))

	d := decimal.NewNullDecimal(decimal.RequireFromString("250.75"))
	got := DenormalizeAmount(d)
	require.NotNil(t, got)
	assert.Equal(t, "250.75", *got)
}
