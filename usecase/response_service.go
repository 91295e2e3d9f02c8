package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/arunika/relay/adapters/llm"
	"github.com/satriahrh/arunika/relay/domain/entities"
	"github.com/satriahrh/arunika/relay/domain/repositories"
	"github.com/satriahrh/arunika/relay/internal/observability/metrics"
)

// ResponseService produces the assistant reply for a transcript
type ResponseService struct {
	completer repositories.ChatCompleter
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewResponseService creates a new response service. completer may be nil,
// in which case every reply comes from the keyword fallback.
func NewResponseService(
	completer repositories.ChatCompleter,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ResponseService {
	return &ResponseService{
		completer: completer,
		metrics:   m,
		logger:    logger,
	}
}

// Generate returns a reply for transcript. It never fails: transcription
// fallbacks short-circuit, and remote errors select a keyword reply.
func (s *ResponseService) Generate(ctx context.Context, transcript string) entities.ReplyResult {
	if transcript == "" || transcript == entities.UnintelligibleTranscript || transcript == entities.FailedTranscript {
		s.metrics.RecordReply(s.providerName(), string(entities.ReplyShortCircuit), 0, false)
		return entities.ReplyResult{Text: entities.ListeningReply, Outcome: entities.ReplyShortCircuit}
	}

	s.logger.Info("Generating response", zap.String("text", transcript))

	start := time.Now()
	reply, err := s.complete(ctx, transcript)
	elapsed := time.Since(start)

	if err != nil {
		s.logger.Error("Response generation error",
			zap.String("provider", s.providerName()),
			zap.Error(err))
		result := entities.ReplyResult{Text: fallbackReply(transcript), Outcome: entities.ReplyFallback}
		s.metrics.RecordReply(s.providerName(), string(result.Outcome), elapsed.Seconds(), s.completer != nil)
		return result
	}

	s.metrics.RecordReply(s.providerName(), string(entities.ReplyGenerated), elapsed.Seconds(), true)
	return entities.ReplyResult{Text: reply, Outcome: entities.ReplyGenerated}
}

func (s *ResponseService) complete(ctx context.Context, transcript string) (string, error) {
	if s.completer == nil {
		return "", repositories.ErrNotConfigured
	}

	reply, err := s.completer.Complete(ctx, repositories.CompletionRequest{
		SystemPrompt: llm.SystemPrompt,
		UserMessage:  transcript,
		MaxTokens:    llm.DefaultMaxTokens,
		Temperature:  llm.DefaultTemperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func (s *ResponseService) providerName() string {
	if s.completer == nil {
		return "none"
	}
	return s.completer.Name()
}

// fallbackReply picks a canned reply by keyword. Matching is on substrings,
// so "this" counts as a greeting.
func fallbackReply(transcript string) string {
	lower := strings.ToLower(transcript)
	switch {
	case strings.Contains(lower, "hello"), strings.Contains(lower, "hi"):
		return entities.GreetingReply
	case strings.Contains(lower, "thank"):
		return entities.ThanksReply
	default:
		return entities.DefaultReply
	}
}
