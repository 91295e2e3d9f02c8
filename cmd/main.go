package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/satriahrh/arunika/relay/adapters/llm"
	"github.com/satriahrh/arunika/relay/adapters/stt"
	"github.com/satriahrh/arunika/relay/domain/repositories"
	"github.com/satriahrh/arunika/relay/internal/api"
	"github.com/satriahrh/arunika/relay/internal/config"
	"github.com/satriahrh/arunika/relay/internal/events"
	"github.com/satriahrh/arunika/relay/internal/observability/metrics"
	"github.com/satriahrh/arunika/relay/usecase"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	// .env is optional; real environment variables take precedence
	envErr := godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Debug("No .env file loaded", zap.Error(envErr))
	}

	logger.Info("Starting ESP32 Voice Assistant Server (Text-Only Mode)",
		zap.String("sttProvider", cfg.STT.Provider),
		zap.String("llmProvider", cfg.LLM.Provider))
	logger.Info("Credentials",
		zap.Bool("hfTokenConfigured", cfg.STT.HuggingFace.Token != ""),
		zap.Bool("groqApiKeyConfigured", cfg.LLM.Groq.APIKey != ""),
		zap.Bool("geminiApiKeyConfigured", cfg.LLM.Gemini.APIKey != ""))

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(registry)

	// Initialize adapters
	ctx := context.Background()
	recognizer := newRecognizer(ctx, cfg, logger)
	completer := newCompleter(ctx, cfg, logger)

	publisher := events.New(cfg.Kafka, m, logger)
	defer publisher.Close()

	// Initialize usecase services
	transcriptionService := usecase.NewTranscriptionService(recognizer, m, logger)
	responseService := usecase.NewResponseService(completer, m, logger)
	conversationService := usecase.NewConversationService(transcriptionService, responseService, publisher, m, logger)

	// Create Echo instance and routes
	e := api.NewEcho(logger)
	api.InitRoutes(e, conversationService, api.Options{
		STTModel:             cfg.STTModel(),
		LLMModel:             cfg.LLMModel(),
		MaxAudioBytes:        cfg.Server.MaxAudioBytes,
		RedactInternalErrors: cfg.Server.RedactInternalErrors,
		Metrics:              m,
		MetricsHandler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, logger)

	// Graceful shutdown
	go func() {
		if err := e.Start(cfg.Addr()); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", cfg.Addr()))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zapConfig.Level = level

	return zapConfig.Build()
}

// newRecognizer returns nil when the provider cannot be built, leaving
// transcription in fallback mode instead of refusing to start.
func newRecognizer(ctx context.Context, cfg *config.Config, logger *zap.Logger) repositories.SpeechRecognizer {
	switch cfg.STT.Provider {
	case config.ProviderMock:
		return stt.NewMockSpeechToText(logger)
	case config.ProviderGoogle:
		recognizer, err := stt.NewGoogleSpeechToText(ctx, cfg.STT.Google, logger)
		if err != nil {
			logger.Error("Failed to initialize Google speech recognizer", zap.Error(err))
			return nil
		}
		return recognizer
	default:
		recognizer, err := stt.NewHuggingFaceSTT(cfg.STT.HuggingFace, logger)
		if err != nil {
			logger.Error("Failed to initialize Hugging Face recognizer", zap.Error(err))
			return nil
		}
		return recognizer
	}
}

func newCompleter(ctx context.Context, cfg *config.Config, logger *zap.Logger) repositories.ChatCompleter {
	switch cfg.LLM.Provider {
	case config.ProviderMock:
		return llm.NewMockLLM()
	case config.ProviderGemini:
		completer, err := llm.NewGeminiLLM(ctx, cfg.LLM.Gemini, logger)
		if err != nil {
			logger.Error("Failed to initialize Gemini client", zap.Error(err))
			return nil
		}
		return completer
	default:
		completer, err := llm.NewGroqLLM(cfg.LLM.Groq, logger)
		if err != nil {
			logger.Error("Failed to initialize Groq client", zap.Error(err))
			return nil
		}
		return completer
	}
}
