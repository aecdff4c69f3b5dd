package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m-rashid-2024/careagent/internal/conversation"
	"github.com/m-rashid-2024/careagent/store"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		session string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Answer the last question of the seed conversation",
		Long: `Run replays the seed conversation (CARE_SEED_FILE or the built-in one)
and lets the model answer its final user question. The answer is printed
to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			seed, err := conversation.Load(a.cfg.SeedFile)
			if err != nil {
				return err
			}
			messages, err := seed.Conversation()
			if err != nil {
				return err
			}

			ag, err := a.newAgent(ctx)
			if err != nil {
				return err
			}
			result, err := ag.Run(ctx, messages, append(a.agentOptions(), agentTimeout(timeout)...)...)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			if session != "" {
				adapter, err := a.openHistory()
				if err != nil {
					return err
				}
				defer adapter.Close()

				if err := store.NewMessageStoreFrom(result.Messages, adapter).Sync(ctx, session); err != nil {
					return fmt.Errorf("save session: %w", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Response.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "store the resulting conversation under this session id")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "overall timeout for the turn (0 = none)")
	return cmd
}
