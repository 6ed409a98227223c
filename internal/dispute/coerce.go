// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package dispute

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EditTimeLayout is the local-time representation used by edit forms.
// It carries second precision so wire timestamps round-trip without drift.
const EditTimeLayout = "2006-01-02T15:04:05"

// editTimeLayoutShort accepts datetime-local input that omits seconds.
const editTimeLayoutShort = "2006-01-02T15:04"

// wireTimeLayouts are the ISO-8601 shapes the API is known to emit.
var wireTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeDate converts a wire timestamp (ISO-8601 UTC string or null) into
// the local edit representation. Null, non-string, and unparseable values
// normalize to "".
func NormalizeDate(raw any) string {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range wireTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Local().Format(EditTimeLayout)
		}
	}
	return ""
}

// DenormalizeDate converts an edit representation back to an ISO-8601 UTC
// string for transmission. "" and unparseable input denormalize to nil.
// DenormalizeDate(NormalizeDate(t)) equals t to second precision.
func DenormalizeDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(EditTimeLayout, s, time.Local)
	if err != nil {
		t, err = time.ParseInLocation(editTimeLayoutShort, s, time.Local)
	}
	if err != nil {
		return nil
	}
	iso := t.UTC().Format(time.RFC3339)
	return &iso
}

// ParseEditTime parses the local edit representation into a time.Time.
// Returns the zero time and false for "" or invalid input.
func ParseEditTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(EditTimeLayout, s, time.Local)
	if err != nil {
		t, err = time.ParseInLocation(editTimeLayoutShort, s, time.Local)
	}
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NormalizeAmount converts a wire monetary amount (JSON number, numeric
// string, or null) into a nullable decimal. Anything that does not parse to a
// finite number normalizes to null, never to NaN.
func NormalizeAmount(raw any) decimal.NullDecimal {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(decimal.NewFromFloat(v))
	case int:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(v)))
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(v))
	case json.Number:
		return parseAmountString(v.String())
	case string:
		return parseAmountString(v)
	default:
		return decimal.NullDecimal{}
	}
}

func parseAmountString(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// DenormalizeAmount renders a nullable decimal as a wire string, or nil when
// the amount is unset.
func DenormalizeAmount(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}
