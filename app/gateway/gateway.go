package gateway

import (
	"context"

	"officesync-ai/app/service/conversation"
	"officesync-ai/app/service/tool"
)

// ToolCall is one invocation requested by the model, with raw argument
// values already decoded from the wire format.
type ToolCall struct {
	ID   string
	Name string
	Args tool.Args
}

// Reply is a single model response: either terminal text or a set of
// requested tool calls. When both are structurally present, tool calls
// take precedence and Text is empty.
type Reply struct {
	Text  string
	Calls []ToolCall
}

type Request struct {
	SystemInstruction string
	Tools             []tool.Definition
	History           []conversation.Turn
}

// Gateway is the model-provider boundary. Tests substitute a scripted
// implementation.
type Gateway interface {
	Complete(ctx context.Context, req Request) (*Reply, error)
}
