// Package llm talks to chat-completion APIs and parses their replies.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sasfit/sasback/internal/config"
)

// ErrNotConfigured is returned when no provider is configured.
var ErrNotConfigured = errors.New("llm: provider not configured")

// Provider is the interface for LLM backends.
type Provider interface {
	// Generate sends a system prompt and user prompt to the LLM and returns
	// the response text.
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (*Response, error)

	// Ping validates connectivity and credentials.
	Ping(ctx context.Context) error

	// Name returns the display name of this provider (e.g. "OpenAI").
	Name() string
}

// Options controls LLM generation behavior.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Response holds the LLM's output.
type Response struct {
	Content    string
	Model      string
	TokensUsed int
	Duration   time.Duration
	StopReason string
}

// NewProvider creates the Provider selected by cfg.LLMProvider. An empty
// provider name yields ErrNotConfigured.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.LLMProvider {
	case "":
		return nil, ErrNotConfigured
	case "openai":
		return NewOpenAIProvider(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL), nil
	case "anthropic":
		return NewAnthropicProvider(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL), nil
	case "ollama":
		return NewOllamaProvider(cfg.LLMBaseURL, cfg.LLMModel), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.LLMProvider)
	}
}

// OptionsFromConfig returns the fixed generation options for every call.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{Temperature: cfg.LLMTemperature, MaxTokens: cfg.LLMMaxTokens}
	if opts.Temperature < 0 || opts.Temperature > 2 {
		opts.Temperature = 0.7
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1500
	}
	return opts
}
