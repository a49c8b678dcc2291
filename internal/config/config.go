// Package config loads SASBACK's runtime configuration from the environment.
// A .env file in the working directory is honored when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// minSecretLen is the shortest JWT signing secret accepted at startup.
const minSecretLen = 16

// Config holds every setting the server and CLI need.
type Config struct {
	Addr       string
	Env        string
	DBPath     string
	CORSOrigin string

	JWTSecret string
	JWTTTL    time.Duration

	LLMProvider    string
	LLMModel       string
	LLMAPIKey      string
	LLMBaseURL     string
	LLMTemperature float64
	LLMMaxTokens   int

	ChatRetentionDays int
	AuthRateLimit     int

	// AlertURLs is a comma-separated list of Shoutrrr URLs for operator alerts.
	AlertURLs string
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:       GetEnv("SASBACK_ADDR", ":5000"),
		Env:        GetEnv("SASBACK_ENV", "development"),
		DBPath:     GetEnv("SASBACK_DB_PATH", "sasback.db"),
		CORSOrigin: GetEnv("SASBACK_CORS_ORIGIN", "http://localhost:3000"),

		JWTSecret: GetEnv("SASBACK_JWT_SECRET", ""),

		LLMProvider: GetEnv("SASBACK_LLM_PROVIDER", ""),
		LLMModel:    GetEnv("SASBACK_LLM_MODEL", ""),
		LLMAPIKey:   GetEnv("SASBACK_LLM_API_KEY", ""),
		LLMBaseURL:  GetEnv("SASBACK_LLM_BASE_URL", ""),

		AlertURLs: GetEnv("SASBACK_ALERT_URLS", ""),
	}

	var err error
	if cfg.JWTTTL, err = time.ParseDuration(GetEnv("SASBACK_JWT_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("config: SASBACK_JWT_TTL: %w", err)
	}
	if cfg.LLMTemperature, err = strconv.ParseFloat(GetEnv("SASBACK_LLM_TEMPERATURE", "0.7"), 64); err != nil {
		return nil, fmt.Errorf("config: SASBACK_LLM_TEMPERATURE: %w", err)
	}
	if cfg.LLMMaxTokens, err = strconv.Atoi(GetEnv("SASBACK_LLM_MAX_TOKENS", "1500")); err != nil {
		return nil, fmt.Errorf("config: SASBACK_LLM_MAX_TOKENS: %w", err)
	}
	if cfg.ChatRetentionDays, err = strconv.Atoi(GetEnv("SASBACK_CHAT_RETENTION_DAYS", "0")); err != nil {
		return nil, fmt.Errorf("config: SASBACK_CHAT_RETENTION_DAYS: %w", err)
	}
	if cfg.AuthRateLimit, err = strconv.Atoi(GetEnv("SASBACK_AUTH_RATE_LIMIT", "10")); err != nil {
		return nil, fmt.Errorf("config: SASBACK_AUTH_RATE_LIMIT: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings the HTTP server cannot run without.
// Token verification is never skipped, so a signing secret is mandatory
// in every environment.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: SASBACK_JWT_SECRET is required")
	}
	if len(c.JWTSecret) < minSecretLen {
		return fmt.Errorf("config: SASBACK_JWT_SECRET must be at least %d bytes", minSecretLen)
	}
	if c.JWTTTL <= 0 {
		return errors.New("config: SASBACK_JWT_TTL must be positive")
	}
	if c.AuthRateLimit <= 0 {
		return errors.New("config: SASBACK_AUTH_RATE_LIMIT must be positive")
	}
	return nil
}

// IsProduction reports whether error details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// GetEnv returns the value of key, or defaultValue when unset or empty.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
