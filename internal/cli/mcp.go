package cli

import (
	"github.com/spf13/cobra"

	"github.com/m-rashid-2024/careagent/mcp"
)

func newMCPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the retriever tools over MCP on stdio",
		Long: `Mcp exposes the retriever tools to MCP clients over stdin/stdout.
Logs go to stderr so they do not interfere with the protocol stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			a.log.Info().Int("tools", a.registry.Len()).Msg("serving MCP on stdio")
			return mcp.ServeStdio(a.registry,
				mcp.WithName("careagent"),
				mcp.WithVersion(version),
				mcp.WithLogger(a.log.With().Str("component", "mcp").Logger()),
			)
		},
	}
}
