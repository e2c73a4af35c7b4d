package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) passwdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Set or change the diary password",
		Long:  "Enables password protection. Changing an existing password requires entering the current one first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureUnlocked(); err != nil {
				return err
			}

			pw, err := a.promptPassword("New password: ")
			if err != nil {
				return err
			}
			confirm, err := a.promptPassword("Repeat new password: ")
			if err != nil {
				return err
			}
			if pw != confirm {
				return errors.New("passwords do not match")
			}
			if pw == "" {
				return errors.New("password must not be empty")
			}

			if err := a.svc.SetPassword(cmd.Context(), pw); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Password protection enabled.")
			return nil
		},
	}
	return cmd
}
