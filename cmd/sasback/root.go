package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sasfit/sasback/internal/config"
	"github.com/sasfit/sasback/internal/database"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sasback",
	Short: "Fitness coaching backend with a Spanish-speaking assistant",
	Long: `SASBACK serves a JSON API for workout and nutrition plans, progress
tracking and a chat assistant that answers in Spanish.

CONFIGURATION:

  Settings come from the environment; a .env file in the working
  directory is loaded first when present.

  SASBACK_ADDR                 listen address (default :5000)
  SASBACK_ENV                  "production" hides error details
  SASBACK_DB_PATH              SQLite file (default sasback.db)
  SASBACK_JWT_SECRET           token signing secret (required to serve)
  SASBACK_LLM_PROVIDER         openai, anthropic or ollama (empty disables)

QUICK START:

  $ sasback migrate
  $ sasback create-user --email ana@example.com --password secreto123 --name Ana
  $ sasback classify "Crea una rutina de 4 días para ganar músculo"
  $ sasback serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "classify" {
			return nil
		}
		var err error
		cfg, err = config.Load()
		return err
	},
}

// openDB opens the configured database and brings its schema up to date.
func openDB() (*sql.DB, error) {
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", cfg.DBPath, err)
	}
	return db, nil
}
