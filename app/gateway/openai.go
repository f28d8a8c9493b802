package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"officesync-ai/app/config"
	"officesync-ai/app/service/conversation"
	"officesync-ai/app/service/tool"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

const maxReplyDuration = 30 * time.Second

var _ Gateway = (*OpenAIGateway)(nil)

// OpenAIGateway talks to any OpenAI-compatible chat-completions
// endpoint with native function calling.
type OpenAIGateway struct {
	client *openai.Client
	model  string
}

func NewOpenAIGateway(di *do.Injector) (*OpenAIGateway, error) {
	cfg := do.MustInvoke[*config.Config](di)

	clientConfig := openai.DefaultConfig(cfg.OpenAI.Token)
	clientConfig.BaseURL = cfg.OpenAI.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: maxReplyDuration,
	}

	return &OpenAIGateway{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.OpenAI.Model,
	}, nil
}

func (g *OpenAIGateway) Complete(ctx context.Context, req Request) (*Reply, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+1)

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.SystemInstruction,
	})

	for _, turn := range req.History {
		messages = append(messages, convertTurn(turn))
	}

	ctx, cancel := context.WithTimeout(ctx, maxReplyDuration)
	defer cancel()

	aiResponse, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:    g.model,
			Messages: messages,
			Tools:    convertDefinitions(req.Tools),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return nil, fmt.Errorf("no chat completion found")
	}

	message := aiResponse.Choices[0].Message

	if len(message.ToolCalls) == 0 {
		return &Reply{Text: message.Content}, nil
	}

	reply := &Reply{}
	for _, tc := range message.ToolCalls {
		args := tool.Args{}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			slog.Warn("Failed to decode tool arguments",
				"tool", tc.Function.Name,
				"arguments", tc.Function.Arguments,
				"error", err)

			args = tool.Args{}
		}

		reply.Calls = append(reply.Calls, ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: args,
		})
	}

	return reply, nil
}

func convertDefinitions(defs []tool.Definition) []openai.Tool {
	if len(defs) == 0 {
		return nil
	}

	out := make([]openai.Tool, 0, len(defs))
	for _, def := range defs {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Schema(),
			},
		})
	}

	return out
}

func convertTurn(turn conversation.Turn) openai.ChatCompletionMessage {
	switch turn.Role {
	case conversation.RoleModel:
		msg := openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: turn.Content,
		}

		for _, call := range turn.ToolCalls {
			rawArgs, _ := json.Marshal(call.Args)

			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   call.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      call.Name,
					Arguments: string(rawArgs),
				},
			})
		}

		return msg
	case conversation.RoleTool:
		return openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    turn.Content,
			ToolCallID: turn.ToolCallID,
			Name:       turn.ToolName,
		}
	default:
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: turn.Content,
		}
	}
}
