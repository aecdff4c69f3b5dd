package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	ai "github.com/m-rashid-2024/careagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type personArgs struct {
	FirstName string `json:"firstname" jsonschema:"Vorname"`
	LastName  string `json:"lastname" jsonschema:"Nachname"`
}

type countArgs struct {
	N int `json:"n"`
}

func greet(ctx context.Context, args personArgs) (string, error) {
	return "Hallo " + args.FirstName + " " + args.LastName, nil
}

func TestRegistryAdd(t *testing.T) {
	t.Run("registers single tool with Func", func(t *testing.T) {
		registry := NewRegistry().Add(Func("greet", "Greet someone", greet))

		assert.Equal(t, 1, registry.Len())
		handler, ok := registry.Get("greet")
		assert.True(t, ok)
		assert.NotNil(t, handler)

		tool, ok := registry.GetTool("greet")
		assert.True(t, ok)
		assert.Equal(t, "greet", tool.Name)
		assert.Equal(t, "Greet someone", tool.Description)
	})

	t.Run("keeps registration order", func(t *testing.T) {
		registry := NewRegistry().
			Add(Func("zeta", "z", greet)).
			Add(Func("alpha", "a", greet), Func("mid", "m", greet))

		assert.Equal(t, []string{"zeta", "alpha", "mid"}, registry.Names())

		tools := registry.Tools()
		require.Len(t, tools, 3)
		assert.Equal(t, "zeta", tools[0].Name)
		assert.Equal(t, "mid", tools[2].Name)
	})

	t.Run("panics on duplicate tool name", func(t *testing.T) {
		assert.Panics(t, func() {
			NewRegistry().Add(Func("dupe", "First", greet), Func("dupe", "Duplicate", greet))
		})
	})

	t.Run("Register reports duplicates", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.Register(ai.Tool{Name: "x"}, nil))

		err := registry.Register(ai.Tool{Name: "x"}, nil)
		var dup *ErrToolAlreadyRegistered
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "tool: already registered: x", err.Error())
	})
}

func TestFunc(t *testing.T) {
	t.Run("infers schema from argument type", func(t *testing.T) {
		reg := Func("greet", "Greet someone", greet)

		var schema struct {
			Required []string `json:"required"`
		}
		require.NoError(t, json.Unmarshal(reg.Tool.Parameters, &schema))
		assert.ElementsMatch(t, []string{"firstname", "lastname"}, schema.Required)
	})

	t.Run("handler decodes arguments", func(t *testing.T) {
		reg := Func("greet", "Greet", greet)

		result, err := reg.Handler(context.Background(), ai.ToolCall{
			ID:        "call_1",
			Name:      "greet",
			Arguments: `{"firstname": "Lukas", "lastname": "Meister"}`,
		})

		require.NoError(t, err)
		assert.Equal(t, "Hallo Lukas Meister", result)
	})

	t.Run("handler returns ErrInvalidArguments on type mismatch", func(t *testing.T) {
		reg := Func("count", "Count", func(ctx context.Context, args countArgs) (string, error) {
			return "", nil
		})

		_, err := reg.Handler(context.Background(), ai.ToolCall{
			Name:      "count",
			Arguments: `{"n": "many"}`,
		})

		var invalid *ErrInvalidArguments
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "count", invalid.Name)
	})
}

func TestRegistryExecute(t *testing.T) {
	registry := NewRegistry().Add(
		Func("greet", "Greet someone", greet),
		Func("fail", "Always fails", func(ctx context.Context, args personArgs) (string, error) {
			return "", errors.New("Client not found")
		}),
		Func("boom", "Panics", func(ctx context.Context, args personArgs) (string, error) {
			panic("kaputt")
		}),
	)

	t.Run("returns content keyed by call id", func(t *testing.T) {
		result, err := registry.Execute(context.Background(), ai.ToolCall{
			ID:        "call_123",
			Name:      "greet",
			Arguments: `{"firstname": "Anna", "lastname": "Schmidt"}`,
		})

		require.NoError(t, err)
		assert.Equal(t, "call_123", result.ToolCallID)
		assert.Equal(t, "greet", result.Name)
		assert.Equal(t, "Hallo Anna Schmidt", result.Content)
		assert.False(t, result.IsError)
	})

	t.Run("handler error becomes error result", func(t *testing.T) {
		result, err := registry.Execute(context.Background(), ai.ToolCall{ID: "c", Name: "fail", Arguments: `{}`})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "Client not found", result.Content)
	})

	t.Run("panic becomes error result", func(t *testing.T) {
		result, err := registry.Execute(context.Background(), ai.ToolCall{ID: "c", Name: "boom", Arguments: `{}`})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "kaputt")
	})

	t.Run("unknown tool", func(t *testing.T) {
		_, err := registry.Execute(context.Background(), ai.ToolCall{ID: "c", Name: "nope"})

		var notFound *ErrToolNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "tool: not found: nope", err.Error())
	})
}
