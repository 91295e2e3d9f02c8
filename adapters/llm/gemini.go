package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/satriahrh/arunika/relay/domain/repositories"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiConfig holds configuration for the Gemini API
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// GeminiLLM implements ChatCompleter using Google's Gemini API
type GeminiLLM struct {
	client *genai.Client
	logger *zap.Logger
	model  string
}

var _ repositories.ChatCompleter = (*GeminiLLM)(nil)

// NewGeminiLLM creates a new Gemini LLM instance. A missing API key leaves the
// adapter unconfigured rather than failing startup.
func NewGeminiLLM(ctx context.Context, config GeminiConfig, logger *zap.Logger) (*GeminiLLM, error) {
	model := config.Model
	if model == "" {
		model = defaultGeminiModel
		logger.Info("Using default model", zap.String("model", model))
	}

	if config.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, using fallback responses")
		return &GeminiLLM{logger: logger, model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiLLM{
		client: client,
		logger: logger,
		model:  model,
	}, nil
}

func (g *GeminiLLM) Name() string  { return "gemini" }
func (g *GeminiLLM) Model() string { return g.model }

// Complete implements repositories.ChatCompleter
func (g *GeminiLLM) Complete(ctx context.Context, req repositories.CompletionRequest) (string, error) {
	if g.client == nil {
		return "", repositories.ErrNotConfigured
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
		MaxOutputTokens:   int32(req.MaxTokens),
	}
	contents := []*genai.Content{genai.NewContentFromText(req.UserMessage, genai.RoleUser)}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	reply := strings.TrimSpace(extractText(response))
	if reply == "" {
		return "", errors.New("gemini returned no content")
	}

	g.logger.Info("Gemini response", zap.String("response", reply))
	return reply, nil
}

// extractText joins the text parts of the first candidate
func extractText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
