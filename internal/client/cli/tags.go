package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *App) tagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags with usage counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.svc.Tags(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(a.out, "No tags.")
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tUSED\tDESCRIPTION")
			for _, t := range list {
				fmt.Fprintf(w, "%s\t%d\t%s\n", t.Name, t.UsageCount, t.Description)
			}
			return w.Flush()
		},
	}
	return cmd
}
