package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/m-rashid-2024/careagent"
	"github.com/m-rashid-2024/careagent/tool"
)

type personArgs struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

func TestToMCPTool(t *testing.T) {
	t.Run("keeps the raw schema", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object","properties":{"firstname":{"type":"string"}}}`)
		mcpTool := ToMCPTool(ai.Tool{
			Name:        "get_client_id",
			Description: "Klienten-ID",
			Parameters:  schema,
		})

		assert.Equal(t, "get_client_id", mcpTool.Name)
		assert.Equal(t, "Klienten-ID", mcpTool.Description)
		assert.Equal(t, schema, mcpTool.RawInputSchema)
	})

	t.Run("converts slices in order", func(t *testing.T) {
		mcpTools := ToMCPTools([]ai.Tool{{Name: "a"}, {Name: "b"}})
		require.Len(t, mcpTools, 2)
		assert.Equal(t, "a", mcpTools[0].Name)
		assert.Equal(t, "b", mcpTools[1].Name)
	})
}

func TestToMCPCallToolResult(t *testing.T) {
	ok := ToMCPCallToolResult(ai.ToolResult{Content: "42"})
	assert.False(t, ok.IsError)

	failed := ToMCPCallToolResult(ai.ToolResult{Content: "Client not found", IsError: true})
	assert.True(t, failed.IsError)
}

func startClient(t *testing.T, registry *tool.Registry) *client.Client {
	t.Helper()
	c, err := client.NewInProcessClient(NewServer(registry, WithName("test-server")))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	t.Cleanup(func() { c.Close() })

	_, err = c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "test-client",
				Version: "1.0.0",
			},
		},
	})
	require.NoError(t, err)
	return c
}

func TestServerIntegration(t *testing.T) {
	registry := tool.NewRegistry().Add(
		tool.Func("get_client_id", "Klienten-ID", func(ctx context.Context, args personArgs) (string, error) {
			return args.FirstName + " " + args.LastName + " hat die ID 42", nil
		}),
		tool.Func("get_vitalwerte", "Vitalwerte", func(ctx context.Context, args personArgs) (string, error) {
			return "", errors.New("error at api call")
		}),
	)
	c := startClient(t, registry)
	ctx := context.Background()

	t.Run("lists registry tools", func(t *testing.T) {
		result, err := c.ListTools(ctx, mcp.ListToolsRequest{})
		require.NoError(t, err)

		names := make([]string, len(result.Tools))
		for i, tl := range result.Tools {
			names[i] = tl.Name
		}
		assert.ElementsMatch(t, []string{"get_client_id", "get_vitalwerte"}, names)
	})

	t.Run("calls tools and returns text", func(t *testing.T) {
		result, err := c.CallTool(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_client_id",
				Arguments: map[string]any{"firstname": "Lukas", "lastname": "Meister"},
			},
		})
		require.NoError(t, err)

		assert.False(t, result.IsError)
		require.Len(t, result.Content, 1)
		text, ok := result.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, "Lukas Meister hat die ID 42", text.Text)
	})

	t.Run("handler errors become error results", func(t *testing.T) {
		result, err := c.CallTool(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_vitalwerte", Arguments: map[string]any{}},
		})
		require.NoError(t, err)

		assert.True(t, result.IsError)
		require.Len(t, result.Content, 1)
		text, ok := result.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, "error at api call", text.Text)
	})
}
