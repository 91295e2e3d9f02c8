package stt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/arunika/relay/domain/entities"
	"github.com/satriahrh/arunika/relay/domain/repositories"
)

const (
	defaultHuggingFaceBaseURL = "https://router.huggingface.co/hf-inference/models"
	defaultHuggingFaceModel   = "openai/whisper-base"
	defaultHuggingFaceTimeout = 30 * time.Second

	// Upper bound on the recognition response we are willing to buffer
	maxRecognitionResponseBytes = 1 << 20
)

// HuggingFaceConfig holds configuration for the Hugging Face inference adapter.
// Token is optional: without it requests are sent anonymously and are subject
// to the public rate limits.
type HuggingFaceConfig struct {
	Token      string        `yaml:"token"`
	APIBaseURL string        `yaml:"api_base_url"`
	Model      string        `yaml:"model"`
	Timeout    time.Duration `yaml:"timeout"`
}

// HuggingFaceSTT implements SpeechRecognizer using the Hugging Face inference API
type HuggingFaceSTT struct {
	token      string
	apiBaseURL string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ repositories.SpeechRecognizer = (*HuggingFaceSTT)(nil)

// ValidateHuggingFaceConfig validates the HuggingFaceConfig
func ValidateHuggingFaceConfig(config HuggingFaceConfig) error {
	if config.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got %s", config.Timeout)
	}
	if config.APIBaseURL != "" && !strings.HasPrefix(config.APIBaseURL, "http") {
		return fmt.Errorf("api base url must be an http(s) url, got %q", config.APIBaseURL)
	}
	return nil
}

// NewHuggingFaceSTT creates a new Hugging Face speech recognizer
func NewHuggingFaceSTT(config HuggingFaceConfig, logger *zap.Logger) (*HuggingFaceSTT, error) {
	if err := ValidateHuggingFaceConfig(config); err != nil {
		return nil, err
	}

	apiBaseURL := config.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = defaultHuggingFaceBaseURL
		logger.Info("Using default API base URL", zap.String("apiBaseURL", apiBaseURL))
	}

	model := config.Model
	if model == "" {
		model = defaultHuggingFaceModel
		logger.Info("Using default ASR model", zap.String("model", model))
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultHuggingFaceTimeout
		logger.Info("Using default timeout", zap.Duration("timeout", timeout))
	}

	if config.Token == "" {
		logger.Warn("HF_TOKEN not set, sending anonymous inference requests")
	}

	return &HuggingFaceSTT{
		token:      config.Token,
		apiBaseURL: strings.TrimRight(apiBaseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Name implements repositories.SpeechRecognizer
func (h *HuggingFaceSTT) Name() string { return "huggingface" }

// Model implements repositories.SpeechRecognizer
func (h *HuggingFaceSTT) Model() string { return h.model }

// Recognize uploads the audio file to the automatic-speech-recognition task
// of the configured model and classifies whatever shape comes back.
func (h *HuggingFaceSTT) Recognize(ctx context.Context, audioPath string) (entities.Recognition, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("opening audio file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("inspecting audio file: %w", err)
	}

	url := fmt.Sprintf("%s/%s", h.apiBaseURL, h.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, file)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", "audio/wav")
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.logger.Debug("Sending audio to Hugging Face",
		zap.String("url", url),
		zap.Int64("audioSize", info.Size()))

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRecognitionResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hugging face API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	result := entities.ParseRecognition(body)
	h.logger.Info("Whisper result", zap.ByteString("body", body))

	return result, nil
}
