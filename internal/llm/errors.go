package llm

import (
	"fmt"
	"strings"
)

// APIError is a non-2xx reply from an upstream provider.
type APIError struct {
	Provider   string
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("llm/%s: HTTP %d (%s): %s", strings.ToLower(e.Provider), e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("llm/%s: HTTP %d: %s", strings.ToLower(e.Provider), e.StatusCode, e.Message)
}

// UserMessage returns a short operator-facing explanation of the failure.
func (e *APIError) UserMessage() string {
	msg := strings.ToLower(e.Message + " " + e.Code)
	switch {
	case e.StatusCode == 401 || e.StatusCode == 403:
		return fmt.Sprintf("Invalid API key for %s. Check SASBACK_LLM_API_KEY.", e.Provider)
	case e.StatusCode == 429:
		return fmt.Sprintf("Rate limit exceeded at %s. Try again later.", e.Provider)
	case strings.Contains(msg, "credit") || strings.Contains(msg, "billing") || strings.Contains(msg, "quota"):
		return fmt.Sprintf("Insufficient credits on the %s account.", e.Provider)
	case strings.Contains(msg, "model") && (strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")):
		return fmt.Sprintf("Model not found at %s. Check SASBACK_LLM_MODEL.", e.Provider)
	case e.StatusCode >= 500:
		return fmt.Sprintf("%s is temporarily unavailable (HTTP %d).", e.Provider, e.StatusCode)
	default:
		return fmt.Sprintf("%s returned HTTP %d: %s", e.Provider, e.StatusCode, e.Message)
	}
}
