package tool

import (
	"context"

	"github.com/tmc/langchaingo/tools"
)

// FromLangchain wraps a langchaingo tool as a single-tool module. The
// wrapped tool receives the "input" argument as its input string.
func FromLangchain(t tools.Tool, instructions string) Module {
	return &langchainModule{tool: t, instructions: instructions}
}

type langchainModule struct {
	tool         tools.Tool
	instructions string
}

func (m *langchainModule) Definitions() []Definition {
	return []Definition{{
		Name:        m.tool.Name(),
		Description: m.tool.Description(),
		Parameters: []Parameter{{
			Name:        "input",
			Type:        TypeString,
			Description: "Input for the tool",
			Required:    true,
		}},
	}}
}

func (m *langchainModule) Instructions() string {
	return m.instructions
}

func (m *langchainModule) Execute(ctx context.Context, call Call) (any, error) {
	return m.tool.Call(ctx, call.Args.String("input"))
}
