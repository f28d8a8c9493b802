package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionSchema(t *testing.T) {
	def := Definition{
		Name: "set_language",
		Parameters: []Parameter{
			{Name: "language", Type: TypeString, Enum: []string{"Vietnamese", "English"}, Required: true},
			{Name: "verbose", Type: TypeInteger},
		},
	}

	schema := def.Schema()

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"language"}, schema["required"])

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)

	lang, ok := properties["language"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, TypeString, lang["type"])
	assert.Equal(t, []string{"Vietnamese", "English"}, lang["enum"])
}

func TestDefinitionSchemaPrefersRawSchema(t *testing.T) {
	raw := map[string]any{"type": "object", "properties": map[string]any{}}
	def := Definition{
		Name:       "memory_search",
		Parameters: []Parameter{{Name: "ignored", Type: TypeString}},
		RawSchema:  raw,
	}

	assert.Equal(t, raw, def.Schema())
}
