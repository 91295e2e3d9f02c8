package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/satriahrh/arunika/relay/domain/entities"
	"github.com/satriahrh/arunika/relay/internal/observability/metrics"
)

const (
	serviceName      = "voice-relay"
	redactedError    = "internal error"
	defaultBodyLimit = "16M"
)

const homePage = `<html>
    <head><title>ESP32 Voice Assistant</title></head>
    <body style="font-family: Arial; padding: 20px;">
        <h1>ESP32 AI Voice Assistant Server</h1>
        <p>Status: <span style="color: green;">Running</span></p>
        <h3>Endpoints:</h3>
        <ul>
            <li><code>GET /status</code> - Check server status</li>
            <li><code>POST /process_audio</code> - Process audio and get text response</li>
            <li><code>GET /health</code> - Liveness probe</li>
            <li><code>GET /metrics</code> - Prometheus metrics</li>
        </ul>
        <p><small>Text response only (no audio output)</small></p>
    </body>
</html>
`

// Pipeline turns one audio payload into an exchange
type Pipeline interface {
	ProcessAudio(ctx context.Context, requestID string, audio []byte) (entities.Exchange, error)
}

// Options carries the static configuration the routes report or enforce
type Options struct {
	STTModel             string
	LLMModel             string
	MaxAudioBytes        string
	RedactInternalErrors bool
	Metrics              *metrics.Metrics
	// MetricsHandler serves /metrics when set
	MetricsHandler http.Handler
}

type handler struct {
	pipeline Pipeline
	opts     Options
	logger   *zap.Logger
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, pipeline Pipeline, opts Options, logger *zap.Logger) {
	if opts.MaxAudioBytes == "" {
		opts.MaxAudioBytes = defaultBodyLimit
	}

	h := &handler{pipeline: pipeline, opts: opts, logger: logger}

	e.GET("/", h.home)
	e.GET("/status", h.status)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:  "ok",
			Service: serviceName,
		})
	})

	if opts.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(opts.MetricsHandler))
	}

	e.POST("/process_audio", h.processAudio, middleware.BodyLimit(opts.MaxAudioBytes))
}

func (h *handler) home(c echo.Context) error {
	return c.HTML(http.StatusOK, homePage)
}

func (h *handler) status(c echo.Context) error {
	h.logger.Info("Status check requested")
	return c.JSON(http.StatusOK, StatusResponse{
		Ready:  true,
		Status: "ok",
		Mode:   "text-only",
		Models: StatusModels{
			STT: h.opts.STTModel + " (API)",
			LLM: h.opts.LLMModel + " (API)",
			TTS: "none (text-only mode)",
		},
	})
}

func (h *handler) processAudio(c echo.Context) (err error) {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	logger := h.logger.With(zap.String("requestID", requestID))

	// A panic inside the pipeline still gets the JSON failure body.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while processing audio", zap.Any("panic", r), zap.Stack("stack"))
			err = h.internalError(c, logger, fmt.Errorf("%v", r), 0)
		}
	}()

	audio, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			h.opts.Metrics.RecordRequest(strconv.Itoa(httpErr.Code), 0)
			return httpErr
		}
		return h.internalError(c, logger, fmt.Errorf("reading request body: %w", err), 0)
	}

	if len(audio) == 0 {
		logger.Error("No audio data received")
		h.opts.Metrics.RecordRequest(strconv.Itoa(http.StatusBadRequest), 0)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No audio data"})
	}

	logger.Info("Received audio data", zap.Int("audioSize", len(audio)))

	exchange, err := h.pipeline.ProcessAudio(c.Request().Context(), requestID, audio)
	if err != nil {
		return h.internalError(c, logger, err, len(audio))
	}

	h.opts.Metrics.RecordRequest(strconv.Itoa(http.StatusOK), len(audio))
	return c.JSON(http.StatusOK, ProcessAudioResponse{
		Success:    true,
		Transcript: exchange.Transcript.Text,
		Response:   exchange.Reply.Text,
	})
}

func (h *handler) internalError(c echo.Context, logger *zap.Logger, err error, audioBytes int) error {
	logger.Error("Error processing audio", zap.Error(err))
	h.opts.Metrics.RecordRequest(strconv.Itoa(http.StatusInternalServerError), audioBytes)

	message := err.Error()
	if h.opts.RedactInternalErrors {
		message = redactedError
	}
	return c.JSON(http.StatusInternalServerError, ProcessAudioErrorResponse{
		Success: false,
		Error:   message,
	})
}
