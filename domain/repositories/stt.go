package repositories

import (
	"context"
	"errors"

	"github.com/satriahrh/arunika/relay/domain/entities"
)

// ErrNotConfigured is returned by adapters whose remote service has no credentials
var ErrNotConfigured = errors.New("remote service not configured")

// SpeechRecognizer abstracts remote automatic speech recognition services
type SpeechRecognizer interface {
	// Recognize transcribes the audio file at audioPath
	Recognize(ctx context.Context, audioPath string) (entities.Recognition, error)
	// Name identifies the provider in logs and metrics
	Name() string
	// Model is the remote model the provider calls
	Model() string
}
