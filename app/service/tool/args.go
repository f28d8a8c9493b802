package tool

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Args holds raw argument values as received from the model. Values may
// arrive as JSON numbers, strings or be missing entirely, so all reads
// go through coercion.
type Args map[string]any

// Int reads key as an integer, coercing from float64, json.Number and
// numeric strings. The second return value is false when the key is
// absent, empty or not coercible.
func (a Args) Int(key string) (int, bool) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return 0, false
	}

	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// IntOr reads key as an integer, falling back to def when the value is
// absent or not coercible.
func (a Args) IntOr(key string, def int) int {
	if v, ok := a.Int(key); ok {
		return v
	}

	return def
}

// String reads key as a string; an absent key yields "".
func (a Args) String(key string) string {
	raw, ok := a[key]
	if !ok || raw == nil {
		return ""
	}

	if s, ok := raw.(string); ok {
		return s
	}

	return ""
}
