// Package cli implements the careagent command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// options are the global flags shared by every subcommand.
type options struct {
	envFile  string
	logLevel string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "careagent",
		Short: "careagent - care documentation assistant",
		Long: `careagent answers questions about clients of a care service.
It lets a language model call retrievers that read the client's care
documentation (reports, vitals, medication, SIS assessment, ...) and
formats the findings as German sentences.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file to load (default .env)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (DEBUG, INFO, WARNING, ERROR, CRITICAL)")

	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)

	root.AddCommand(
		newRunCmd(opts),
		newAskCmd(opts),
		newToolsCmd(),
		newMCPCmd(opts),
		newSessionsCmd(opts),
	)
	return root
}

// Execute runs the root command. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
