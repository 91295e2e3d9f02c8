package usecase

import (
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/satriahrh/arunika/relay/domain/entities"
	"github.com/satriahrh/arunika/relay/domain/repositories"
	"github.com/satriahrh/arunika/relay/internal/observability/metrics"
)

// Shorter recognized text is treated as noise
const minTranscriptRunes = 2

// TranscriptionService turns an audio payload into transcript text, never failing
type TranscriptionService struct {
	recognizer repositories.SpeechRecognizer
	metrics    *metrics.Metrics
	logger     *zap.Logger
	tempDir    string
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(
	recognizer repositories.SpeechRecognizer,
	m *metrics.Metrics,
	logger *zap.Logger,
) *TranscriptionService {
	return &TranscriptionService{
		recognizer: recognizer,
		metrics:    m,
		logger:     logger,
	}
}

// Transcribe writes audio to a scoped temporary file, sends it to the
// recognizer and normalizes the result. Remote and file errors become the
// fixed failure text.
func (s *TranscriptionService) Transcribe(ctx context.Context, audio []byte) entities.TranscriptResult {
	start := time.Now()

	result, err := s.transcribe(ctx, audio)
	if err != nil {
		s.logger.Error("Transcription error", zap.Error(err))
		result = entities.TranscriptResult{Text: entities.FailedTranscript, Outcome: entities.TranscriptFailed}
	}

	s.metrics.RecordTranscription(s.providerName(), string(result.Outcome), time.Since(start).Seconds())
	s.logger.Info("Transcription completed",
		zap.String("text", result.Text),
		zap.String("outcome", string(result.Outcome)),
		zap.Duration("elapsed", time.Since(start)))

	return result
}

func (s *TranscriptionService) transcribe(ctx context.Context, audio []byte) (entities.TranscriptResult, error) {
	if s.recognizer == nil {
		return entities.TranscriptResult{}, repositories.ErrNotConfigured
	}

	file, err := os.CreateTemp(s.tempDir, "*.wav")
	if err != nil {
		return entities.TranscriptResult{}, fmt.Errorf("creating temp file: %w", err)
	}
	path := file.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove temp audio file", zap.String("path", path), zap.Error(err))
		}
	}()

	if _, err := file.Write(audio); err != nil {
		file.Close()
		return entities.TranscriptResult{}, fmt.Errorf("writing temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return entities.TranscriptResult{}, fmt.Errorf("closing temp file: %w", err)
	}

	s.logger.Debug("Audio saved for transcription",
		zap.String("path", path),
		zap.Int("audioSize", len(audio)),
		zap.String("provider", s.recognizer.Name()))

	recognition, err := s.recognizer.Recognize(ctx, path)
	if err != nil {
		return entities.TranscriptResult{}, fmt.Errorf("%s recognize: %w", s.recognizer.Name(), err)
	}

	text := entities.Normalize(recognition)
	if utf8.RuneCountInString(text) < minTranscriptRunes {
		return entities.TranscriptResult{Text: entities.UnintelligibleTranscript, Outcome: entities.TranscriptUnintelligible}, nil
	}

	return entities.TranscriptResult{Text: text, Outcome: entities.TranscriptRecognized}, nil
}

func (s *TranscriptionService) providerName() string {
	if s.recognizer == nil {
		return "none"
	}
	return s.recognizer.Name()
}
