package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *App) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entries to a JSON archive",
		Long:  "Writes every entry to a JSON archive. Sealed entries stay sealed; the archive never contains decrypted content.",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := a.out
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			n, err := a.svc.Export(cmd.Context(), w)
			if err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(a.out, "Exported %d entries to %s\n", n, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the archive to a file instead of stdout")
	return cmd
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore entries from a JSON archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureUnlocked(); err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := a.svc.Import(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("imported %d entries before failing: %w", n, err)
			}
			fmt.Fprintf(a.out, "Imported %d entries\n", n)
			return nil
		},
	}
	return cmd
}
