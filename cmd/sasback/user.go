package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sasfit/sasback/internal/models"
)

var (
	userEmail    string
	userPassword string
	userName     string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an account",
	Long: `Create an account directly in the database, for bootstrapping a
deployment before the API is exposed.

  $ sasback create-user --email ana@example.com --password secreto123 --name "Ana García"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkNewUser(userEmail, userPassword, userName); err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		user, err := models.CreateUser(db, userEmail, userPassword, strings.TrimSpace(userName))
		if errors.Is(err, models.ErrDuplicateEmail) {
			return fmt.Errorf("an account for %s already exists", userEmail)
		}
		if err != nil {
			return err
		}
		color.Green("✓ Created user %s", user.Email)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("id=%d", user.ID))
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "account email (required)")
	createUserCmd.Flags().StringVar(&userPassword, "password", "", "password, 8 to 72 characters (required)")
	createUserCmd.Flags().StringVar(&userName, "name", "", "display name (required)")
	createUserCmd.MarkFlagRequired("email")
	createUserCmd.MarkFlagRequired("password")
	createUserCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(createUserCmd)
}

// checkNewUser applies the same limits as the register endpoint.
func checkNewUser(email, password, name string) error {
	switch {
	case !strings.Contains(email, "@"):
		return fmt.Errorf("invalid email %q", email)
	case len(password) < 8 || len(password) > 72:
		return errors.New("password must be 8 to 72 characters")
	case strings.TrimSpace(name) == "":
		return errors.New("name must not be blank")
	}
	return nil
}
