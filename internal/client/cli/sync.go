package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the local store with the remote one",
		Long:  "Pushes pending entries to the configured remote store and finalizes deletions. Requires --remote or remote_dsn in the config file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureUnlocked(); err != nil {
				return err
			}

			report, err := a.svc.Sync(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Sync done: %d pushed, %d deleted, %d failed\n",
				report.Pushed, report.Deleted, report.Failed)
			return nil
		},
	}
	return cmd
}
