package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/satriahrh/arunika/relay/domain/repositories"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.1-8b-instant"
	defaultGroqTimeout = 30 * time.Second
)

// GroqConfig holds configuration for Groq's OpenAI-compatible endpoint
type GroqConfig struct {
	APIKey     string        `yaml:"api_key"`
	APIBaseURL string        `yaml:"api_base_url"`
	Model      string        `yaml:"model"`
	Timeout    time.Duration `yaml:"timeout"`
}

// GroqLLM implements ChatCompleter against Groq's chat completions API
type GroqLLM struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

var _ repositories.ChatCompleter = (*GroqLLM)(nil)

// ValidateGroqConfig validates the GroqConfig
func ValidateGroqConfig(config GroqConfig) error {
	if config.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got %s", config.Timeout)
	}
	if config.APIBaseURL != "" && !strings.HasPrefix(config.APIBaseURL, "http") {
		return fmt.Errorf("api base url must be an http(s) url, got %q", config.APIBaseURL)
	}
	return nil
}

// NewGroqLLM creates a Groq client. Without an API key the adapter is still
// returned but every Complete call fails with repositories.ErrNotConfigured.
func NewGroqLLM(config GroqConfig, logger *zap.Logger) (*GroqLLM, error) {
	if err := ValidateGroqConfig(config); err != nil {
		return nil, err
	}

	model := config.Model
	if model == "" {
		model = defaultGroqModel
		logger.Info("Using default model", zap.String("model", model))
	}

	if config.APIKey == "" {
		logger.Warn("GROQ_API_KEY not set, using fallback responses")
		return &GroqLLM{model: model, logger: logger}, nil
	}

	baseURL := config.APIBaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
		logger.Info("Using default API base URL", zap.String("apiBaseURL", baseURL))
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultGroqTimeout
		logger.Info("Using default timeout", zap.Duration("timeout", timeout))
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = strings.TrimRight(baseURL, "/")
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &GroqLLM{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}, nil
}

func (g *GroqLLM) Name() string  { return "groq" }
func (g *GroqLLM) Model() string { return g.model }

// Complete implements repositories.ChatCompleter
func (g *GroqLLM) Complete(ctx context.Context, req repositories.CompletionRequest) (string, error) {
	if g.client == nil {
		return "", repositories.ErrNotConfigured
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserMessage},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("groq API error %d: %w", apiErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("groq chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("groq returned no choices")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	g.logger.Info("Groq response", zap.String("response", reply))

	return reply, nil
}
