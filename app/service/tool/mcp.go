package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"officesync-ai/app/config"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCPModule exposes the tools of one MCP server to the registry. Tool
// names are prefixed with the server name to keep them disjoint across
// servers.
type MCPModule struct {
	client client.MCPClient
	name   string
	defs   []Definition
	remote map[string]string
}

func NewMCPModule(ctx context.Context, cfg config.MCPServer) (*MCPModule, error) {
	mcpClient, err := client.NewStdioMCPClient(cfg.Command, nil, cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client for %s: %w", cfg.Name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "officesync-ai",
		Version: "1.0.0",
	}

	if _, err = mcpClient.Initialize(ctx, initRequest); err != nil {
		return nil, fmt.Errorf("failed to initialize MCP client %s: %w", cfg.Name, err)
	}

	toolsResponse, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools from %s: %w", cfg.Name, err)
	}

	m := &MCPModule{
		client: mcpClient,
		name:   cfg.Name,
		remote: map[string]string{},
	}

	for _, mcpTool := range toolsResponse.Tools {
		name := fmt.Sprintf("%s_%s", cfg.Name, mcpTool.Name)

		m.remote[name] = mcpTool.Name
		m.defs = append(m.defs, Definition{
			Name:        name,
			Description: mcpTool.Description,
			RawSchema: map[string]any{
				"type":       "object",
				"properties": mcpTool.InputSchema.Properties,
				"required":   mcpTool.InputSchema.Required,
			},
		})
	}

	return m, nil
}

func (m *MCPModule) Definitions() []Definition {
	return m.defs
}

func (m *MCPModule) Instructions() string {
	return ""
}

func (m *MCPModule) Execute(ctx context.Context, call Call) (any, error) {
	remoteName, ok := m.remote[call.Name]
	if !ok {
		return nil, fmt.Errorf("tool %s is not served by %s", call.Name, m.name)
	}

	callRequest := mcp.CallToolRequest{
		Request: mcp.Request{
			Method: "tools/call",
		},
	}
	callRequest.Params.Name = remoteName
	callRequest.Params.Arguments = map[string]any(call.Args)

	response, err := m.client.CallTool(ctx, callRequest)
	if err != nil {
		return nil, fmt.Errorf("MCP tool call failed: %w", err)
	}

	var result strings.Builder
	for _, content := range response.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			result.WriteString(textContent.Text)
			result.WriteString("\n")
		}
	}

	return strings.TrimSpace(result.String()), nil
}

func (m *MCPModule) Close() error {
	return m.client.Close()
}
