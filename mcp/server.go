package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	ai "github.com/m-rashid-2024/careagent"
	"github.com/m-rashid-2024/careagent/tool"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
	log     zerolog.Logger
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithLogger sets the logger for tool calls.
func WithLogger(l zerolog.Logger) ServerOption {
	return func(c *serverConfig) {
		c.log = l
	}
}

// NewServer creates an MCP server that exposes every tool in registry.
// Calls go through registry.Execute, so handler errors reach the client as
// error results carrying the handler's message.
func NewServer(registry *tool.Registry, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "careagent",
		version: "1.0.0",
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	for _, t := range registry.Tools() {
		s.AddTool(ToMCPTool(t), newHandler(registry, t.Name, cfg.log))
	}

	return s
}

func newHandler(registry *tool.Registry, name string, log zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsJSON := "{}"
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to marshal arguments: %v", err)), nil
			}
			argsJSON = string(data)
		}

		call := ai.ToolCall{
			ID:        ai.GenerateCallID(),
			Name:      name,
			Arguments: argsJSON,
		}
		result, err := registry.Execute(ctx, call)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		log.Info().Str("tool", name).Bool("error", result.IsError).Msg("mcp tool call")
		return ToMCPCallToolResult(result), nil
	}
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(registry *tool.Registry, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(registry, opts...))
}
