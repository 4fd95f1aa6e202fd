package main

import (
	"errors"
	"fmt"
	"io"

	"prtracker/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newImportCmd(configPath *string) *cobra.Command {
	var (
		kind     string
		file     string
		username string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a legacy JSON export for one user",
		Long: `Import reads a JSON array exported by the old tracker and stores every
valid entry for the given user. Unknown movements or benchmarks, bad dates and
non-positive values are skipped and listed. The input file is never modified.

EXAMPLES:

  prtracker import --kind weightlift --file data/weightlifts.json --user alice
  prtracker import -k benchmark -f data/benchmarks.json -u alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := service.ParseImportKind(kind)
			if err != nil {
				return err
			}
			if file == "" || username == "" {
				return errors.New("--file and --user are required")
			}

			a, err := openApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			target, err := a.services.FindUser(cmd.Context(), operatorSession, username)
			if err != nil {
				return fmt.Errorf("user %q: %w", username, err)
			}

			report, err := a.services.ImportLegacy(cmd.Context(), operatorSession, k, file, target.ID)
			if err != nil {
				return fmt.Errorf("import %s: %w", file, err)
			}
			a.log.Infow("legacy import finished", "file", file, "user", username,
				"imported", report.Imported, "skipped", report.Skipped)
			printReport(cmd.OutOrStdout(), username, report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "record kind: weightlift or benchmark")
	cmd.Flags().StringVarP(&file, "file", "f", "", "legacy JSON file")
	cmd.Flags().StringVarP(&username, "user", "u", "", "username that will own the records")
	return cmd
}

func printReport(w io.Writer, username string, r *service.ImportReport) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	faint := color.New(color.Faint)

	fmt.Fprintf(w, "%s %d %s records for %s\n", green.Sprint("imported"), r.Imported, r.Kind, username)
	if r.Skipped == 0 {
		return
	}
	fmt.Fprintf(w, "%s %d entries\n", yellow.Sprint("skipped"), r.Skipped)
	for _, s := range r.Skips {
		fmt.Fprintf(w, "  %s %s\n", faint.Sprintf("#%d", s.Index), s.Reason)
	}
}
