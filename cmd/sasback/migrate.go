package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sasfit/sasback/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations and seed the exercise catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		version, err := database.Version(db)
		if err != nil {
			return err
		}
		color.Green("✓ Database %s at schema version %d", cfg.DBPath, version)

		var exercises int
		if err := db.QueryRow(`SELECT COUNT(*) FROM exercises`).Scan(&exercises); err != nil {
			return fmt.Errorf("count exercises: %w", err)
		}
		fmt.Printf("  %d exercises in catalog\n", exercises)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
