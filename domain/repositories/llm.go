package repositories

import "context"

// ChatCompleter abstracts any remote chat-completion provider
type ChatCompleter interface {
	// Complete sends one system instruction plus one user message and returns the reply
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
	Model() string
}

// CompletionRequest carries a single-turn chat completion
type CompletionRequest struct {
	SystemPrompt string  `json:"system_prompt"`
	UserMessage  string  `json:"user_message"`
	MaxTokens    int     `json:"max_tokens"`
	Temperature  float32 `json:"temperature"`
}
