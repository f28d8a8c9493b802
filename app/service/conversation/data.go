package conversation

import "officesync-ai/app/service/tool"

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
	RoleTool  Role = "tool"
)

type Language string

const (
	LanguageUnset      Language = ""
	LanguageVietnamese Language = "Vietnamese"
	LanguageEnglish    Language = "English"
)

type ToolCall struct {
	ID   string
	Name string
	Args tool.Args
}

// Turn is a single exchange unit. Model turns carry either text or
// requested tool calls; tool turns carry the JSON-encoded result for
// one call. Turns are immutable once appended.
type Turn struct {
	Role    Role
	Content string

	// Set on model turns that request tools.
	ToolCalls []ToolCall

	// Set on tool turns.
	ToolCallID string
	ToolName   string
}
