package tool

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/oops"
)

// UnsupportedResult is returned by Dispatch for tool names no module
// has claimed. The loop keeps running on it.
const UnsupportedResult = "Lỗi: Tool này chưa được hỗ trợ."

type Call struct {
	Name   string
	UserID int64
	Args   Args
}

// Module is anything contributing tools to the registry: one or more
// schema definitions, a free-text instruction block for the system
// prompt and a single executor entry point covering all its tools.
type Module interface {
	Definitions() []Definition
	Instructions() string
	Execute(ctx context.Context, call Call) (any, error)
}

type Registry struct {
	handlers map[string]Module
	defs     []Definition
	prompts  []string
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: map[string]Module{},
	}
}

// Register adds a module's tools to the catalogue. Tool names must be
// unique across all registered modules; collisions are startup errors.
func (r *Registry) Register(m Module) error {
	for _, def := range m.Definitions() {
		if _, exists := r.handlers[def.Name]; exists {
			return oops.Errorf("tool %q is already registered", def.Name)
		}

		r.handlers[def.Name] = m
		r.defs = append(r.defs, def)
	}

	if prompt := m.Instructions(); prompt != "" {
		r.prompts = append(r.prompts, prompt)
	}

	return nil
}

func (r *Registry) Definitions() []Definition {
	return r.defs
}

// Instructions concatenates module instruction blocks in registration
// order.
func (r *Registry) Instructions() string {
	return strings.Join(r.prompts, "\n")
}

// Dispatch executes the named tool and never returns an error: unknown
// names yield UnsupportedResult and executor failures (including
// panics) are converted to descriptive strings, so a round always
// produces a well-formed result for every requested call.
func (r *Registry) Dispatch(ctx context.Context, call Call) (result any) {
	handler, ok := r.handlers[call.Name]
	if !ok {
		slog.Warn("Unsupported tool requested", "tool", call.Name)
		return UnsupportedResult
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Tool executor panicked", "tool", call.Name, "panic", rec)
			result = fmt.Sprintf("Tool %s failed: %v", call.Name, rec)
		}
	}()

	value, err := handler.Execute(ctx, call)
	if err != nil {
		slog.Warn("Tool executor failed", "tool", call.Name, "error", err)
		return fmt.Sprintf("Tool %s failed: %v", call.Name, err)
	}

	return value
}
