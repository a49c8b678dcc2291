package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBytes caps how much of an upstream reply is read.
const maxResponseBytes = 4 << 20

// postJSON sends body as JSON and returns the raw reply. Non-2xx replies are
// returned with their status so each provider can decode its own error shape.
func postJSON(ctx context.Context, client *http.Client, tag, url string, headers map[string]string, body any) ([]byte, int, time.Duration, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("llm/%s: marshal request: %w", tag, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("llm/%s: create request: %w", tag, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("llm/%s: request failed: %w", tag, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, 0, fmt.Errorf("llm/%s: read response: %w", tag, err)
	}
	return respBody, resp.StatusCode, time.Since(start), nil
}

// apiError builds an APIError from a failed reply, using message and code
// when the provider's error body decoded, or the raw body otherwise.
func apiError(provider string, status int, message, code string, raw []byte) *APIError {
	e := &APIError{Provider: provider, StatusCode: status, Code: code, Message: message}
	if e.Message == "" {
		e.Message = string(raw)
	}
	return e
}
