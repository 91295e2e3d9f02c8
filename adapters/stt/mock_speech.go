package stt

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/satriahrh/arunika/relay/domain/entities"
	"github.com/satriahrh/arunika/relay/domain/repositories"
)

// MockSpeechToText is a placeholder recognizer for running without credentials
type MockSpeechToText struct {
	logger *zap.Logger
}

var _ repositories.SpeechRecognizer = (*MockSpeechToText)(nil)

// NewMockSpeechToText creates a new mock speech-to-text service
func NewMockSpeechToText(logger *zap.Logger) *MockSpeechToText {
	return &MockSpeechToText{
		logger: logger,
	}
}

func (s *MockSpeechToText) Name() string  { return "mock" }
func (s *MockSpeechToText) Model() string { return "mock-whisper" }

// Recognize implements repositories.SpeechRecognizer
func (s *MockSpeechToText) Recognize(ctx context.Context, audioPath string) (entities.Recognition, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("inspecting audio file: %w", err)
	}

	s.logger.Info("Processing speech-to-text",
		zap.String("path", audioPath),
		zap.Int64("audioSize", info.Size()))

	// Mock transcription based on audio size
	switch {
	case info.Size() > 10000:
		return entities.StructuredText{Text: "Hello there, can you tell me a short joke?"}, nil
	case info.Size() > 5000:
		return entities.StructuredText{Text: "Thank you for listening."}, nil
	case info.Size() > 1000:
		return entities.PlainText{Text: "Hi!"}, nil
	default:
		return entities.PlainText{Text: ""}, nil
	}
}
