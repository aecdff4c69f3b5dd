package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	ai "github.com/m-rashid-2024/careagent"
	"github.com/m-rashid-2024/careagent/agent"
	"github.com/m-rashid-2024/careagent/internal/conversation"
	"github.com/m-rashid-2024/careagent/store"
)

func newAskCmd(opts *options) *cobra.Command {
	var (
		session string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about a client",
		Long: `Ask sends a question to the assistant. With --session the conversation
is continued from the stored history and saved again afterwards.
Without it a new session id is generated and printed to stderr.`,
		Example: `  careagent ask "Welche Medikamente nimmt Lukas Meister?"
  careagent ask --session 4b1c... "Und wie ist sein Blutdruck?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return ai.ErrEmptyInput
			}

			a, err := newApp(opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			adapter, err := a.openHistory()
			if err != nil {
				return err
			}
			defer adapter.Close()

			if session == "" {
				session = uuid.NewString()
				fmt.Fprintf(cmd.ErrOrStderr(), "session: %s\n", session)
			}

			history := store.NewMessageStore(adapter)
			if err := history.Reload(ctx, session); err != nil && !errors.Is(err, store.ErrKeyNotFound) {
				return fmt.Errorf("load session: %w", err)
			}

			if history.Len() == 0 {
				seed, err := conversation.Load(a.cfg.SeedFile)
				if err != nil {
					return err
				}
				history.Append(seed.Prompt(question)...)
			} else {
				history.Append(ai.Message{Role: ai.RoleUser, Content: question})
			}

			ag, err := a.newAgent(ctx)
			if err != nil {
				return err
			}
			result, err := ag.Run(ctx, history.Messages(), append(a.agentOptions(), agentTimeout(timeout)...)...)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}

			history.Replace(result.Messages)
			if err := history.Sync(ctx, session); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Response.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "continue the conversation stored under this id")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "overall timeout for the turn (0 = none)")
	return cmd
}

func agentTimeout(d time.Duration) []agent.Option {
	if d <= 0 {
		return nil
	}
	return []agent.Option{agent.WithTimeout(d)}
}
