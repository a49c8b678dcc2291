package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sasfit/sasback/internal/assistant"
	"github.com/sasfit/sasback/internal/auth"
	"github.com/sasfit/sasback/internal/handlers"
	"github.com/sasfit/sasback/internal/llm"
	"github.com/sasfit/sasback/internal/middleware"
	"github.com/sasfit/sasback/internal/notify"
	"github.com/sasfit/sasback/internal/scheduler"
	"github.com/sasfit/sasback/internal/validator"
)

var serveTrustedProxies []string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringSliceVar(&serveTrustedProxies, "trusted-proxy", nil, "CIDR of a reverse proxy whose X-Forwarded-For is honored (repeatable)")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	logger := newLogger()
	slog.SetDefault(logger)

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	log.Printf("Database ready: %s", filepath.Clean(cfg.DBPath))

	provider, err := llm.NewProvider(cfg)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Printf("LLM provider not configured; assistant answers that need a model will apologize")
	case err != nil:
		return err
	default:
		log.Printf("LLM provider: %s", provider.Name())
	}

	alerts := notify.NewAlerter(notify.ParseURLs(cfg.AlertURLs), notify.DefaultCooldown)
	defer alerts.Wait()

	if cfg.ChatRetentionDays > 0 {
		sched := scheduler.New(db, cfg.ChatRetentionDays)
		sched.Start()
		defer sched.Stop()
	}

	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute, serveTrustedProxies...)
	defer limiter.Stop()

	dispatcher := assistant.New(db, provider, llm.OptionsFromConfig(cfg))
	dispatcher.Alerts = alerts

	deps := &handlers.Deps{
		DB:         db,
		Issuer:     auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Validator:  validator.New(),
		Assistant:  dispatcher,
		Production: cfg.IsProduction(),
	}
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: handlers.NewRouter(deps, handlers.RouterOptions{
			Logger:      logger,
			CORSOrigin:  cfg.CORSOrigin,
			AuthLimiter: limiter,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		color.Green("✓ SASBACK listening on %s (%s)", cfg.Addr, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	color.Yellow("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newLogger logs JSON in production and text elsewhere.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("SASBACK_LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
