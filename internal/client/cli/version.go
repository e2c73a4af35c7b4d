package cli

import (
	"fmt"

	"github.com/guncedev/gunce/internal/buildinfo"
	"github.com/spf13/cobra"
)

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and build metadata",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.out, buildinfo.String())
		},
	}
}
