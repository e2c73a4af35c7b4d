package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Long:  "Marks the entry as deleted locally; the removal is propagated to the remote store on the next sync.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureUnlocked(); err != nil {
				return err
			}

			id, err := a.resolveID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.svc.DeleteEntry(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted entry %s\n", id)
			return nil
		},
	}
	return cmd
}
