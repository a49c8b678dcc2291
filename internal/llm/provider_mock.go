package llm

import (
	"context"
	"sync"
	"time"
)

// MockCall records one Generate invocation.
type MockCall struct {
	SystemPrompt string
	UserPrompt   string
	Options      Options
}

// MockProvider implements Provider for testing. It returns FixedContent and
// records every call.
type MockProvider struct {
	FixedContent string
	PingErr      error
	GenerateErr  error

	mu    sync.Mutex
	calls []MockCall
}

// NewMockProvider creates a mock provider that always replies with content.
func NewMockProvider(content string) *MockProvider {
	return &MockProvider{FixedContent: content}
}

func (p *MockProvider) Name() string { return "Mock" }

func (p *MockProvider) Ping(_ context.Context) error {
	return p.PingErr
}

func (p *MockProvider) Generate(_ context.Context, systemPrompt, userPrompt string, opts Options) (*Response, error) {
	p.mu.Lock()
	p.calls = append(p.calls, MockCall{SystemPrompt: systemPrompt, UserPrompt: userPrompt, Options: opts})
	p.mu.Unlock()

	if p.GenerateErr != nil {
		return nil, p.GenerateErr
	}
	return &Response{
		Content:    p.FixedContent,
		Model:      "mock",
		TokensUsed: 100,
		Duration:   time.Millisecond,
		StopReason: "stop",
	}, nil
}

// Calls returns a copy of the recorded calls.
func (p *MockProvider) Calls() []MockCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]MockCall(nil), p.calls...)
}
