package tool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsIntCoercion(t *testing.T) {
	args := Args{
		"float":   float64(7),
		"string":  "12",
		"padded":  " 3 ",
		"number":  json.Number("2026"),
		"empty":   "",
		"garbage": "next month",
		"nil":     nil,
	}

	v, ok := args.Int("float")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	v, ok = args.Int("string")
	require.True(t, ok)
	assert.Equal(t, 12, v)

	v, ok = args.Int("padded")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = args.Int("number")
	require.True(t, ok)
	assert.Equal(t, 2026, v)

	for _, key := range []string{"empty", "garbage", "nil", "missing"} {
		_, ok = args.Int(key)
		assert.False(t, ok, "key %q must not coerce", key)
	}
}

func TestArgsIntOrFallsBack(t *testing.T) {
	args := Args{"month": "5"}

	assert.Equal(t, 5, args.IntOr("month", 1))
	assert.Equal(t, 2026, args.IntOr("year", 2026))
}

func TestArgsString(t *testing.T) {
	args := Args{"language": "Vietnamese", "count": float64(3)}

	assert.Equal(t, "Vietnamese", args.String("language"))
	assert.Equal(t, "", args.String("count"))
	assert.Equal(t, "", args.String("missing"))
}
