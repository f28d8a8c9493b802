package tool

// Parameter types accepted by tool schemas.
const (
	TypeString  = "string"
	TypeInteger = "integer"
)

type Parameter struct {
	Name        string
	Type        string
	Description string
	Enum        []string
	Required    bool
}

type Definition struct {
	Name        string
	Description string
	Parameters  []Parameter

	// RawSchema overrides Parameters for tools that already carry a
	// JSON schema (MCP servers).
	RawSchema map[string]any
}

// Schema renders the definition as a JSON-schema object in the shape
// OpenAI-compatible providers expect for function parameters.
func (d Definition) Schema() map[string]any {
	if d.RawSchema != nil {
		return d.RawSchema
	}

	properties := map[string]any{}
	required := []string{}

	for _, p := range d.Parameters {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}

		properties[p.Name] = prop

		if p.Required {
			required = append(required, p.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}
