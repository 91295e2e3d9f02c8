package stt

import (
	"context"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/satriahrh/arunika/relay/domain/entities"
	"github.com/satriahrh/arunika/relay/domain/repositories"
)

const (
	defaultGoogleLanguage = "en-US"
	defaultGoogleEncoding = "LINEAR16"
	defaultGoogleModel    = "default"
)

// GoogleConfig holds configuration for Google Cloud Speech-to-Text.
// Credentials come from Application Default Credentials.
type GoogleConfig struct {
	Language   string `yaml:"language"`
	Encoding   string `yaml:"encoding"`
	SampleRate int    `yaml:"sample_rate"`
	Model      string `yaml:"model"`
}

// GoogleSpeechToText implements SpeechRecognizer for Google Cloud
type GoogleSpeechToText struct {
	client     *speech.Client
	language   string
	encoding   speechpb.RecognitionConfig_AudioEncoding
	sampleRate int
	model      string
	logger     *zap.Logger
}

var _ repositories.SpeechRecognizer = (*GoogleSpeechToText)(nil)

// NewGoogleSpeechToText creates the Google Cloud Speech client once for the process
func NewGoogleSpeechToText(ctx context.Context, config GoogleConfig, logger *zap.Logger) (*GoogleSpeechToText, error) {
	if config.SampleRate < 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", config.SampleRate)
	}

	language := config.Language
	if language == "" {
		language = defaultGoogleLanguage
		logger.Info("Using default language", zap.String("language", language))
	}

	encodingName := config.Encoding
	if encodingName == "" {
		encodingName = defaultGoogleEncoding
		logger.Info("Using default encoding", zap.String("encoding", encodingName))
	}

	encoding, err := getAudioEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	model := config.Model
	if model == "" {
		model = defaultGoogleModel
	}

	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	return &GoogleSpeechToText{
		client:     client,
		language:   language,
		encoding:   encoding,
		sampleRate: config.SampleRate,
		model:      model,
		logger:     logger,
	}, nil
}

// Name implements repositories.SpeechRecognizer
func (g *GoogleSpeechToText) Name() string { return "google" }

// Model implements repositories.SpeechRecognizer
func (g *GoogleSpeechToText) Model() string { return g.model }

// Recognize transcribes a whole recording with a synchronous Recognize call
func (g *GoogleSpeechToText) Recognize(ctx context.Context, audioPath string) (entities.Recognition, error) {
	audioData, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("reading audio file: %w", err)
	}

	// SampleRateHertz may stay zero for WAV input; Google reads it from the header.
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        g.encoding,
			SampleRateHertz: int32(g.sampleRate),
			LanguageCode:    g.language,
			Model:           g.model,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recognize audio: %w", err)
	}

	return entities.PlainText{Text: joinTranscripts(resp.GetResults())}, nil
}

// Close releases the underlying gRPC connection
func (g *GoogleSpeechToText) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// joinTranscripts concatenates the best alternative of every result
func joinTranscripts(results []*speechpb.SpeechRecognitionResult) string {
	var parts []string
	for _, result := range results {
		alternatives := result.GetAlternatives()
		if len(alternatives) == 0 {
			continue
		}
		if text := strings.TrimSpace(alternatives[0].GetTranscript()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// getAudioEncoding converts string encoding to Google Speech API enum
func getAudioEncoding(encoding string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch strings.ToUpper(encoding) {
	case "WAV", "LINEAR16":
		return speechpb.RecognitionConfig_LINEAR16, nil
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC, nil
	case "MULAW":
		return speechpb.RecognitionConfig_MULAW, nil
	case "AMR":
		return speechpb.RecognitionConfig_AMR, nil
	case "AMR_WB":
		return speechpb.RecognitionConfig_AMR_WB, nil
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS, nil
	case "SPEEX_WITH_HEADER_BYTE":
		return speechpb.RecognitionConfig_SPEEX_WITH_HEADER_BYTE, nil
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}
