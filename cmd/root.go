package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "prtracker",
		Short: "CrossFit personal record tracker",
		Long: `prtracker keeps weightlifting and benchmark WOD results for a gym and
serves them over an authenticated JSON API.

QUICK START:

  $ prtracker serve                                   # Start the API on :8080
  $ prtracker import --kind weightlift --file lifts.json --user alice
  $ prtracker admin reset-password --user alice --password s3cret

CONFIGURATION:

  Settings come from configs/config.yml, an optional .env file and
  PRTRACKER_* environment variables (PRTRACKER_DB_PATH, PRTRACKER_PORT,
  PRTRACKER_AUTH_SIGNING_KEY, ...), later sources winning.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file (default configs/config.yml)")

	root.AddCommand(
		newServeCmd(&configPath),
		newImportCmd(&configPath),
		newAdminCmd(&configPath),
	)
	return root
}
