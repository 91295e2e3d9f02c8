package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/arunika/relay/domain/entities"
	"github.com/satriahrh/arunika/relay/domain/repositories"
	"github.com/satriahrh/arunika/relay/internal/observability/metrics"
)

// ErrEmptyAudio is returned when there is nothing to transcribe
var ErrEmptyAudio = errors.New("no audio data")

const publishTimeout = 5 * time.Second

// ConversationService orchestrates the conversation flow
type ConversationService struct {
	transcription *TranscriptionService
	responses     *ResponseService
	publisher     repositories.ExchangePublisher
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewConversationService creates a new conversation service. publisher may be nil.
func NewConversationService(
	transcription *TranscriptionService,
	responses *ResponseService,
	publisher repositories.ExchangePublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		transcription: transcription,
		responses:     responses,
		publisher:     publisher,
		metrics:       m,
		logger:        logger,
	}
}

// ProcessAudio transcribes audio and generates a reply to the transcript
func (s *ConversationService) ProcessAudio(ctx context.Context, requestID string, audio []byte) (entities.Exchange, error) {
	if len(audio) == 0 {
		return entities.Exchange{}, ErrEmptyAudio
	}

	logger := s.logger.With(zap.String("requestID", requestID))
	logger.Info("Processing audio", zap.Int("audioSize", len(audio)))

	start := time.Now()

	// Step 1: Speech to Text
	transcript := s.transcription.Transcribe(ctx, audio)

	// Step 2: Generate reply
	reply := s.responses.Generate(ctx, transcript.Text)

	elapsed := time.Since(start)
	exchange := entities.Exchange{
		RequestID:   requestID,
		AudioBytes:  len(audio),
		Transcript:  transcript,
		Reply:       reply,
		DurationMs:  elapsed.Milliseconds(),
		CompletedAt: time.Now().UTC(),
	}

	s.metrics.RecordExchange(elapsed.Seconds())
	logger.Info("Exchange completed",
		zap.String("transcript", transcript.Text),
		zap.String("response", reply.Text),
		zap.String("transcriptOutcome", string(transcript.Outcome)),
		zap.String("replyOutcome", string(reply.Outcome)),
		zap.Duration("elapsed", elapsed))

	s.publish(exchange)

	return exchange, nil
}

// publish emits the exchange without holding up the response
func (s *ConversationService) publish(exchange entities.Exchange) {
	if s.publisher == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.publisher.PublishExchange(ctx, exchange); err != nil {
			s.logger.Warn("Failed to publish exchange",
				zap.String("requestID", exchange.RequestID),
				zap.Error(err))
		}
	}()
}
