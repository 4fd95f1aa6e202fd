package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newAdminCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Offline account maintenance",
	}
	cmd.AddCommand(newResetPasswordCmd(configPath))
	return cmd
}

func newResetPasswordCmd(configPath *string) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for any account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("--user and --password are required")
			}

			a, err := openApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.services.FindUser(cmd.Context(), operatorSession, username)
			if err != nil {
				return fmt.Errorf("user %q: %w", username, err)
			}
			if err := a.services.AdminResetPassword(cmd.Context(), operatorSession, u.ID, password); err != nil {
				return err
			}
			a.log.Infow("password reset", "user_id", u.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s password for %s\n", color.GreenString("reset"), username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "user", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	return cmd
}
