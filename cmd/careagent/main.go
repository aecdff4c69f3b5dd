// Command careagent is the care documentation assistant.
//
// Usage:
//
//	careagent run                     answer the seed conversation
//	careagent ask "<question>"        ask a question, optionally --session <id>
//	careagent tools                   list the retriever tools
//	careagent mcp                     serve the tools over MCP stdio
//	careagent sessions                list stored conversations
//
// Configuration is read from .env and the environment (see .env.example).
//
// Configuration for an MCP client:
//
//	{
//	    "mcpServers": {
//	        "careagent": {
//	            "command": "careagent",
//	            "args": ["mcp", "--env-file", "/path/to/.env"]
//	        }
//	    }
//	}
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-rashid-2024/careagent/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
