package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"officesync-ai/app/config"
	"officesync-ai/app/gateway"
	"officesync-ai/app/service/conversation"
	"officesync-ai/app/service/tool"

	_ "embed"

	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

//go:embed system_prompt.txt
var systemPromptTemplate string

//go:embed lang_unset_prompt.txt
var langUnsetPrompt string

//go:embed lang_chosen_prompt.txt
var langChosenPrompt string

// Degraded replies, surfaced instead of errors so the chat contract
// never raises for backend faults.
const (
	apologyReply    = "Xin lỗi, hệ thống đang gặp sự cố gián đoạn."
	nonTextReply    = "Đã thực hiện lệnh nhưng AI không trả lời bằng văn bản."
	exhaustedReply  = "Xin lỗi, tôi chưa thể hoàn tất yêu cầu này. Bạn có thể thử lại với câu hỏi cụ thể hơn không?"
	greetingGuideVI = `Hãy nói: "Xin chào! Chào mừng bạn quay trở lại OfficeSync. Tôi có thể hỗ trợ gì cho công việc của bạn hôm nay?"`
	greetingGuideEN = `Say: "Welcome back to OfficeSync! How can I assist you with your work today?"`
)

// Service runs the per-request control loop: build the situational
// system instruction, send the user's message, dispatch any tool calls
// the model requests, resubmit results and repeat until the model
// produces plain text. Rounds are bounded; on exhaustion a final
// completion without tools forces a text answer.
type Service struct {
	cfg      *config.Config
	gw       gateway.Gateway
	store    conversation.Store
	registry *tool.Registry

	// now is swappable in tests.
	now func() time.Time
}

func New(di *do.Injector) (*Service, error) {
	return newService(
		do.MustInvoke[*config.Config](di),
		do.MustInvoke[*gateway.OpenAIGateway](di),
		do.MustInvoke[*conversation.Service](di),
		do.MustInvoke[*tool.Registry](di),
	), nil
}

func newService(cfg *config.Config, gw gateway.Gateway, store conversation.Store, registry *tool.Registry) *Service {
	return &Service{
		cfg:      cfg,
		gw:       gw,
		store:    store,
		registry: registry,
		now:      time.Now,
	}
}

// HandleChat processes one user message to completion and returns the
// final reply text. It never returns an error: every failure path
// degrades to an apologetic reply.
func (s *Service) HandleChat(ctx context.Context, userID int64, message string) string {
	s.store.Lock(userID)
	defer s.store.Unlock(userID)

	instruction := s.buildInstruction(userID)
	history := s.replayWindow(userID)

	pending := []conversation.Turn{{
		Role:    conversation.RoleUser,
		Content: message,
	}}

	for round := 0; round <= s.cfg.Chat.MaxToolRounds; round++ {
		req := gateway.Request{
			SystemInstruction: instruction,
			Tools:             s.registry.Definitions(),
			History:           append(history, pending...),
		}

		// Last chance: withhold the catalogue to force a text answer.
		if round == s.cfg.Chat.MaxToolRounds {
			req.Tools = nil
		}

		reply, err := s.gw.Complete(ctx, req)
		if err != nil {
			slog.Error("Model gateway failed",
				"user_id", userID,
				"round", round,
				"error", err)
			return apologyReply
		}

		if len(reply.Calls) == 0 {
			text := strings.TrimSpace(reply.Text)
			if text == "" {
				slog.Warn("Terminal response contains no text", "user_id", userID)
				text = nonTextReply
			}

			pending = append(pending, conversation.Turn{
				Role:    conversation.RoleModel,
				Content: text,
			})
			s.store.Append(userID, pending...)

			return text
		}

		pending = append(pending, modelTurn(reply.Calls))
		pending = append(pending, s.dispatchRound(ctx, userID, reply.Calls)...)
	}

	slog.Warn("Tool rounds exhausted without a text answer",
		"user_id", userID,
		"max_rounds", s.cfg.Chat.MaxToolRounds)

	return exhaustedReply
}

// dispatchRound executes all calls of one round concurrently. Calls in
// a round are independent; a failing executor yields an error string
// for its own result only. Results keep their pairing to calls via
// index, regardless of completion order.
func (s *Service) dispatchRound(ctx context.Context, userID int64, calls []gateway.ToolCall) []conversation.Turn {
	results := make([]conversation.Turn, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		g.Go(func() error {
			start := time.Now()

			value := s.registry.Dispatch(gctx, tool.Call{
				Name:   call.Name,
				UserID: userID,
				Args:   call.Args,
			})

			slog.Info("Tool call dispatched",
				"user_id", userID,
				"tool", call.Name,
				"args", call.Args,
				"duration", time.Since(start))

			results[i] = conversation.Turn{
				Role:       conversation.RoleTool,
				Content:    encodeResult(value),
				ToolCallID: call.ID,
				ToolName:   call.Name,
			}

			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *Service) buildInstruction(userID int64) string {
	var langBlock string

	switch lang := s.store.Language(userID); lang {
	case conversation.LanguageUnset:
		langBlock = langUnsetPrompt
	default:
		greeting := greetingGuideEN
		if lang == conversation.LanguageVietnamese {
			greeting = greetingGuideVI
		}

		langBlock = strings.ReplaceAll(langChosenPrompt, "{language}", string(lang))
		langBlock = strings.ReplaceAll(langBlock, "{greeting_guide}", greeting)
	}

	templateValues := map[string]any{
		"date":              s.now().Format("2006-01-02"),
		"user_id":           userID,
		"language_block":    langBlock,
		"tool_instructions": s.registry.Instructions(),
	}

	prompt := systemPromptTemplate
	for key, value := range templateValues {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", fmt.Sprint(value))
	}

	return prompt
}

func (s *Service) replayWindow(userID int64) []conversation.Turn {
	history := s.store.History(userID)

	if window := s.cfg.Chat.HistoryWindow; len(history) > window {
		history = history[len(history)-window:]

		// Never start the replay on a dangling tool result.
		for len(history) > 0 && history[0].Role == conversation.RoleTool {
			history = history[1:]
		}
	}

	return history
}

func modelTurn(calls []gateway.ToolCall) conversation.Turn {
	turn := conversation.Turn{Role: conversation.RoleModel}

	for _, call := range calls {
		turn.ToolCalls = append(turn.ToolCalls, conversation.ToolCall{
			ID:   call.ID,
			Name: call.Name,
			Args: call.Args,
		})
	}

	return turn
}

// encodeResult folds a tool result into the string content of a tool
// turn. Sentinel strings pass through as-is, structured values are
// JSON-encoded.
func encodeResult(value any) string {
	if s, ok := value.(string); ok {
		return s
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("failed to encode tool result: %v", err)
	}

	return string(encoded)
}
