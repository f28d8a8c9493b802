package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModule struct {
	defs         []Definition
	instructions string
	execute      func(ctx context.Context, call Call) (any, error)
}

func (m *fakeModule) Definitions() []Definition { return m.defs }
func (m *fakeModule) Instructions() string      { return m.instructions }
func (m *fakeModule) Execute(ctx context.Context, call Call) (any, error) {
	return m.execute(ctx, call)
}

func simpleModule(name, instructions string, execute func(ctx context.Context, call Call) (any, error)) *fakeModule {
	return &fakeModule{
		defs:         []Definition{{Name: name, Description: name}},
		instructions: instructions,
		execute:      execute,
	}
}

func okModule(name, instructions string) *fakeModule {
	return simpleModule(name, instructions, func(_ context.Context, _ Call) (any, error) {
		return "ok", nil
	})
}

func TestRegisterRejectsCollisions(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(okModule("a", "")))

	err := registry.Register(okModule("a", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestInstructionsConcatenateInRegistrationOrder(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(okModule("a", "first block")))
	require.NoError(t, registry.Register(okModule("b", "")))
	require.NoError(t, registry.Register(okModule("c", "second block")))

	assert.Equal(t, "first block\nsecond block", registry.Instructions())
	assert.Len(t, registry.Definitions(), 3)
}

func TestDispatchUnknownToolReturnsSentinel(t *testing.T) {
	registry := NewRegistry()

	result := registry.Dispatch(context.Background(), Call{Name: "nope"})

	assert.Equal(t, UnsupportedResult, result)
}

func TestDispatchConvertsExecutorFailures(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(simpleModule("boom", "", func(_ context.Context, _ Call) (any, error) {
		return nil, errors.New("upstream exploded")
	})))
	require.NoError(t, registry.Register(simpleModule("panics", "", func(_ context.Context, _ Call) (any, error) {
		panic("oh no")
	})))

	result := registry.Dispatch(context.Background(), Call{Name: "boom"})
	require.IsType(t, "", result)
	assert.Contains(t, result.(string), "upstream exploded")

	result = registry.Dispatch(context.Background(), Call{Name: "panics"})
	require.IsType(t, "", result)
	assert.Contains(t, result.(string), "oh no")
}

func TestDispatchPassesCallThrough(t *testing.T) {
	registry := NewRegistry()

	var got Call
	require.NoError(t, registry.Register(simpleModule("echo", "", func(_ context.Context, call Call) (any, error) {
		got = call
		return "done", nil
	})))

	result := registry.Dispatch(context.Background(), Call{
		Name:   "echo",
		UserID: 42,
		Args:   Args{"month": "5"},
	})

	assert.Equal(t, "done", result)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, 5, got.Args.IntOr("month", 0))
}
