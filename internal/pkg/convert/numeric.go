// Package convert provides tolerant numeric conversion for exchange payloads,
// which mix JSON numbers and decimal strings for the same fields.
package convert

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ToFloat64 converts various numeric representations to float64.
// Returns 0 for unsupported types or parse failures.
func ToFloat64(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f
	default:
		return 0
	}
}

// ToInt64 converts numeric representations to int64, truncating floats.
func ToInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case json.Number:
		n, err := t.Int64()
		if err == nil {
			return n
		}
		return int64(ToFloat64(v))
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err == nil {
			return n
		}
		return int64(ToFloat64(v))
	default:
		return int64(ToFloat64(v))
	}
}
