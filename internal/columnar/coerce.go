package columnar

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Float coerces a resolved value to float64, defaulting to 0 on absence or
// any parse failure. Bad numeric input is upstream noise, never an error.
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Int coerces a resolved value to int with the same parse-or-zero rule.
func Int(v any) int {
	return int(Float(v))
}

// Int64 coerces a resolved value to int64 with the same parse-or-zero rule.
func Int64(v any) int64 {
	return int64(Float(v))
}

// String returns the value as a string, or "" when it is absent or not
// string-shaped. Identity fields pass through unmodified; case-folding
// happens only at comparison time.
func String(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

// timeLayouts are the timestamp encodings observed across producers.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnixTime coerces a creation timestamp to unix seconds. Strings are parsed
// against the known layouts; numbers above 1e12 are treated as milliseconds.
// Anything unparseable falls back to now.
func UnixTime(v any, now time.Time) int64 {
	switch t := v.(type) {
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return parsed.Unix()
			}
		}
	default:
		if f := Float(v); f > 0 {
			if f > 1e12 {
				return int64(f / 1000)
			}
			return int64(f)
		}
	}
	return now.Unix()
}
