package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/m-rashid-2024/careagent/store"
)

func newSessionsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			keys, err := adapter.Keys(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SESSION\tMESSAGES\tUPDATED")
			for _, key := range keys {
				s, err := store.LoadSession(ctx, adapter, key)
				if err != nil {
					a.log.Warn().Err(err).Str("session", key).Msg("skipping unreadable session")
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", s.ID, len(s.Messages), s.UpdatedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			adapter, err := a.openHistory()
			if err != nil {
				return err
			}
			defer adapter.Close()
			return adapter.Delete(cmd.Context(), args[0])
		},
	})
	return cmd
}
