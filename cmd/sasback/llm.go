package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sasfit/sasback/internal/llm"
	"github.com/sasfit/sasback/internal/notify"
)

var pingLLMCmd = &cobra.Command{
	Use:   "ping-llm",
	Short: "Check connectivity and credentials of the configured model provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := llm.NewProvider(cfg)
		if errors.Is(err, llm.ErrNotConfigured) {
			color.Yellow("No LLM provider configured (set SASBACK_LLM_PROVIDER)")
			return nil
		}
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		if err := provider.Ping(ctx); err != nil {
			var apiErr *llm.APIError
			if errors.As(err, &apiErr) {
				return fmt.Errorf("%s: %s", provider.Name(), apiErr.UserMessage())
			}
			return fmt.Errorf("%s: %w", provider.Name(), err)
		}
		color.Green("✓ %s reachable", provider.Name())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingLLMCmd)
}

var testAlertsCmd = &cobra.Command{
	Use:   "test-alerts",
	Short: "Send a test message to every SASBACK_ALERT_URLS destination",
	RunE: func(cmd *cobra.Command, args []string) error {
		alerts := notify.NewAlerter(notify.ParseURLs(cfg.AlertURLs), 0)
		if err := alerts.Test(); err != nil {
			return err
		}
		color.Green("✓ Test alert sent")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(testAlertsCmd)
}
