// Package mcp exposes a [tool.Registry] as a Model Context Protocol server.
//
// The retrievers are then usable from any MCP client, e.g. an IDE assistant,
// without going through the agent loop:
//
//	registry := caretools.NewService(api).Register(tool.NewRegistry())
//	if err := mcp.ServeStdio(registry, mcp.WithName("careagent")); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	ai "github.com/m-rashid-2024/careagent"
)

// ToMCPTool converts a Tool to an MCP Tool.
// Tool.Parameters is used as the MCP Tool's RawInputSchema.
func ToMCPTool(t ai.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters)
}

// ToMCPTools converts a slice of Tools to MCP Tools.
func ToMCPTools(tools []ai.Tool) []mcp.Tool {
	result := make([]mcp.Tool, len(tools))
	for i, t := range tools {
		result[i] = ToMCPTool(t)
	}
	return result
}

// ToMCPCallToolResult converts a ToolResult to an MCP CallToolResult.
func ToMCPCallToolResult(result ai.ToolResult) *mcp.CallToolResult {
	if result.IsError {
		return mcp.NewToolResultError(result.Content)
	}
	return mcp.NewToolResultText(result.Content)
}
