// Package coerce provides total type-coercion helpers for untrusted
// tabular cells. Every function returns a tagged result so callers can
// distinguish a successfully converted value from a fallback default.
package coerce

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// FloatResult is the outcome of a numeric coercion.
type FloatResult struct {
	Value     float64
	Defaulted bool
}

// IntResult is the outcome of an integer coercion.
type IntResult struct {
	Value     int
	Defaulted bool
}

// StringResult is the outcome of a string coercion.
type StringResult struct {
	Value     string
	Defaulted bool
}

// DateLayouts are the accepted review date formats, most specific first.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// ToFloat converts a cell to float64. Null and unparsable values default
// to zero with Defaulted set.
func ToFloat(v any) FloatResult {
	if v == nil {
		return FloatResult{Defaulted: true}
	}

	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return FloatResult{Defaulted: true}
	}

	return FloatResult{Value: f}
}

// ToInt converts a cell to int, truncating fractional values toward zero.
func ToInt(v any) IntResult {
	f := ToFloat(v)

	return IntResult{Value: int(f.Value), Defaulted: f.Defaulted}
}

// ToString converts a cell to string. Null defaults to the empty string
// with Defaulted set.
func ToString(v any) StringResult {
	if v == nil {
		return StringResult{Defaulted: true}
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return StringResult{Defaulted: true}
	}

	return StringResult{Value: s}
}

// ToDate parses a cell as a calendar timestamp. It reports false for null
// or unparsable values; dates are never guessed or defaulted.
func ToDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return val, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}

		for _, layout := range DateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}

		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
