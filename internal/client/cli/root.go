package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd builds the command tree. Persistent flags default to the loaded
// config, so flags override the JSON file which overrides the defaults.
func (a *App) RootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "gunce",
		Short:         "gunce keeps a personal diary from your terminal",
		Long:          "Günce is a local-first personal diary with tags, sentiment, optional encryption and sync to a remote store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// -c/--config is consumed by the config loader before cobra runs; it is
	// registered here so it shows up in help and passes validation.
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to JSON config file")
	root.PersistentFlags().StringVar(&a.cfg.DatabasePath, "db", a.cfg.DatabasePath, "path to the local database")
	root.PersistentFlags().StringVar(&a.cfg.RemoteDSN, "remote", a.cfg.RemoteDSN, "PostgreSQL DSN of the sync target")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return a.init(cmd.Context())
	}

	root.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.showCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.tagsCmd(),
		a.syncCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.passwdCmd(),
		a.versionCmd(),
	)
	return root
}
