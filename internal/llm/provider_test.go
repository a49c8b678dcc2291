package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasfit/sasback/internal/config"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{provider: "openai", wantName: "OpenAI"},
		{provider: "anthropic", wantName: "Anthropic"},
		{provider: "ollama", wantName: "Ollama"},
		{provider: "gemini", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p, err := NewProvider(&config.Config{LLMProvider: tt.provider, LLMAPIKey: "k"})
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, errors.Is(err, ErrNotConfigured))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewProvider_NotConfigured(t *testing.T) {
	_, err := NewProvider(&config.Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(&config.Config{LLMTemperature: 0.2, LLMMaxTokens: 800})
	assert.Equal(t, Options{Temperature: 0.2, MaxTokens: 800}, opts)

	opts = OptionsFromConfig(&config.Config{LLMTemperature: 5})
	assert.Equal(t, Options{Temperature: 0.7, MaxTokens: 1500}, opts)
}

func TestAPIError_UserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantSubstr string
	}{
		{"401 invalid key", &APIError{Provider: "OpenAI", StatusCode: 401, Message: "invalid api key"}, "Invalid API key"},
		{"429 rate limit", &APIError{Provider: "Anthropic", StatusCode: 429, Message: "rate limited"}, "Rate limit exceeded"},
		{"400 billing", &APIError{Provider: "OpenAI", StatusCode: 400, Message: "insufficient credit balance"}, "Insufficient credits"},
		{"404 model", &APIError{Provider: "Ollama", StatusCode: 404, Message: "model 'x' not found"}, "Model not found"},
		{"503 unavailable", &APIError{Provider: "Anthropic", StatusCode: 503, Message: "overloaded"}, "temporarily unavailable"},
		{"418 other", &APIError{Provider: "OpenAI", StatusCode: 418, Message: "teapot"}, "HTTP 418"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.err.UserMessage(), tt.wantSubstr)
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Provider: "OpenAI", StatusCode: 401, Code: "invalid_api_key", Message: "bad key"}
	assert.Equal(t, "llm/openai: HTTP 401 (invalid_api_key): bad key", err.Error())
}

func TestOpenAIProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model     string              `json:"model"`
			Messages  []map[string]string `json:"messages"`
			MaxTokens int                 `json:"max_tokens"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o", body.Model)
		assert.Equal(t, 100, body.MaxTokens)
		if assert.Len(t, body.Messages, 2) {
			assert.Equal(t, "system", body.Messages[0]["role"])
			assert.Equal(t, "hola", body.Messages[1]["content"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message":       map[string]string{"content": "Hola desde OpenAI"},
				"finish_reason": "stop",
			}},
			"model": "gpt-4o",
			"usage": map[string]int{"total_tokens": 42},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", "gpt-4o", srv.URL+"/")
	result, err := p.Generate(context.Background(), "system", "hola", Options{Temperature: 0.7, MaxTokens: 100})
	require.NoError(t, err)
	assert.Equal(t, "Hola desde OpenAI", result.Content)
	assert.Equal(t, "gpt-4o", result.Model)
	assert.Equal(t, 42, result.TokensUsed)
	assert.Equal(t, "stop", result.StopReason)
}

func TestOpenAIProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "invalid_request_error", "code": "invalid_api_key", "message": "bad key"},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider("bad-key", "gpt-4o", srv.URL)
	_, err := p.Generate(context.Background(), "system", "user", Options{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "OpenAI", apiErr.Provider)
	assert.Equal(t, "invalid_api_key", apiErr.Code)
	assert.Equal(t, "bad key", apiErr.Message)
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[],"model":"gpt-4o"}`)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("k", "", srv.URL)
	_, err := p.Generate(context.Background(), "s", "u", Options{})
	assert.Error(t, err)
}

func TestAnthropicProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "system", body["system"])
		assert.EqualValues(t, 1500, body["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "Hola "},
				{"type": "text", "text": "desde Anthropic"},
			},
			"model":       "claude-3-5-haiku-latest",
			"stop_reason": "end_turn",
			"usage":       map[string]int{"input_tokens": 10, "output_tokens": 20},
		})
	}))
	defer srv.Close()

	p := NewAnthropicProvider("test-key", "", srv.URL+"/v1")
	result, err := p.Generate(context.Background(), "system", "user", Options{Temperature: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "Hola desde Anthropic", result.Content)
	assert.Equal(t, 30, result.TokensUsed)
	assert.Equal(t, "end_turn", result.StopReason)
}

func TestAnthropicProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	}))
	defer srv.Close()

	p := NewAnthropicProvider("k", "", srv.URL)
	_, err := p.Generate(context.Background(), "s", "u", Options{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "rate_limit_error", apiErr.Code)
	assert.Contains(t, apiErr.UserMessage(), "Rate limit exceeded")
}

func TestOllamaProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		var body struct {
			Stream  bool           `json:"stream"`
			Options map[string]any `json:"options"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.False(t, body.Stream)
		assert.EqualValues(t, 200, body.Options["num_predict"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message":           map[string]string{"content": "Hola desde Ollama"},
			"model":             "llama3",
			"done_reason":       "stop",
			"prompt_eval_count": 5,
			"eval_count":        7,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	result, err := p.Generate(context.Background(), "system", "user", Options{Temperature: 0.5, MaxTokens: 200})
	require.NoError(t, err)
	assert.Equal(t, "Hola desde Ollama", result.Content)
	assert.Equal(t, "llama3", result.Model)
	assert.Equal(t, 12, result.TokensUsed)
}

func TestOllamaProvider_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"models":[]}`)
	}))
	defer srv.Close()

	require.NoError(t, NewOllamaProvider(srv.URL, "llama3").Ping(context.Background()))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()
	assert.Error(t, NewOllamaProvider(down.URL, "llama3").Ping(context.Background()))
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider("ok")
	resp, err := p.Generate(context.Background(), "sys", "user", Options{MaxTokens: 10})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)

	calls := p.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "sys", calls[0].SystemPrompt)
	assert.Equal(t, 10, calls[0].Options.MaxTokens)

	p.GenerateErr = errors.New("boom")
	_, err = p.Generate(context.Background(), "sys", "user", Options{})
	assert.EqualError(t, err, "boom")
	assert.Len(t, p.Calls(), 2)
}

func TestSystemPrompt(t *testing.T) {
	for _, c := range []Category{CategoryWorkout, CategoryNutrition, CategoryAdvice, CategoryMotivation, CategoryExercise, CategoryGeneral} {
		assert.Contains(t, SystemPrompt(c), "español", string(c))
	}
	assert.Contains(t, SystemPrompt(CategoryWorkout), `"sessions"`)
	assert.Contains(t, SystemPrompt(CategoryNutrition), `"meals"`)
	assert.Equal(t, SystemPrompt(CategoryGeneral), SystemPrompt(Category("otra")))
}
