// Package convert provides lenient type coercion helpers.
package convert

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ToFloat64 coerces v to float64. Strings are trimmed and parsed;
// anything unparseable comes back as 0.
func ToFloat64(v any) float64 {
	f, _ := ToFloat64OK(v)
	return f
}

// ToFloat64OK coerces v to float64 and reports whether the value was
// actually numeric. Cleaning uses the flag to count bad cells.
func ToFloat64OK(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ToString coerces a scalar cell to its string form. Lists are joined
// with commas; maps and other shapes come back empty.
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, ToString(item))
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
