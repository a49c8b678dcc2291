package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sasfit/sasback/internal/importers"
	"github.com/sasfit/sasback/internal/models"
)

var importEmail string

var importCmd = &cobra.Command{
	Use:   "import-logs <file.csv>",
	Short: "Import workout history from a Strong or Hevy CSV export",
	Long: `Record each training day in a Strong or Hevy CSV export as a workout
log for an existing account. Days that already have a log are skipped, so
running the same import twice is safe.

  $ sasback import-logs --email ana@example.com strong_workouts.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		pf, err := importers.Parse(data)
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		user, err := models.GetUserByEmail(db, importEmail)
		if err != nil {
			return fmt.Errorf("look up %s: %w", importEmail, err)
		}
		res, err := importers.Apply(db, user.ID, pf)
		if err != nil {
			return err
		}

		color.Green("✓ Imported %d workout(s) from %s", res.Imported, pf.Format)
		if res.Skipped > 0 {
			color.Yellow("  %d day(s) already logged, skipped", res.Skipped)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importEmail, "email", "", "account to import into (required)")
	importCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(importCmd)
}
