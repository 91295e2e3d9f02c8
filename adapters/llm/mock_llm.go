package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/satriahrh/arunika/relay/domain/repositories"
)

// MockLLM is a placeholder chat completer for credential-free local runs
type MockLLM struct{}

var _ repositories.ChatCompleter = (*MockLLM)(nil)

// NewMockLLM creates a new mock chat completer
func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Name() string  { return "mock" }
func (m *MockLLM) Model() string { return "mock-chat" }

// Complete implements repositories.ChatCompleter
func (m *MockLLM) Complete(ctx context.Context, req repositories.CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	message := strings.TrimSpace(req.UserMessage)
	if message == "" {
		return "Hi! What would you like to talk about?", nil
	}
	return fmt.Sprintf("You said: %s", message), nil
}
