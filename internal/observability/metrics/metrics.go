// Package metrics provides Prometheus metrics for the relay pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "voice_relay"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Request metrics
	RequestsTotal      *prometheus.CounterVec
	AudioBytesReceived prometheus.Counter
	ExchangeDuration   prometheus.Histogram

	// Stage metrics
	STTLatency *prometheus.HistogramVec
	STTResults *prometheus.CounterVec
	LLMLatency *prometheus.HistogramVec
	LLMResults *prometheus.CounterVec

	// Event metrics
	PublishTotal  *prometheus.CounterVec
	PublishErrors *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics with reg. Tests pass a fresh
// prometheus.NewRegistry so repeated construction does not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of process_audio requests by response status",
		}, []string{"status"}),
		AudioBytesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_received_total",
			Help:      "Total audio bytes received",
		}),
		ExchangeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "exchange_duration_seconds",
			Help:      "End-to-end duration of transcription plus generation",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),

		STTLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stt_latency_seconds",
			Help:      "Speech-to-text call latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"provider"}),
		STTResults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stt_results_total",
			Help:      "Transcription results by outcome",
		}, []string{"provider", "outcome"}),
		LLMLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_latency_seconds",
			Help:      "Chat completion call latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"provider"}),
		LLMResults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_results_total",
			Help:      "Reply results by outcome",
		}, []string{"provider", "outcome"}),

		PublishTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_publish_total",
			Help:      "Total number of exchange events published",
		}, []string{"topic"}),
		PublishErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_publish_errors_total",
			Help:      "Total number of exchange event publish errors",
		}, []string{"topic"}),
	}
}

// All Record helpers are safe on a nil *Metrics.

// RecordRequest records a finished process_audio request.
func (m *Metrics) RecordRequest(status string, audioBytes int) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(status).Inc()
	m.AudioBytesReceived.Add(float64(audioBytes))
}

// RecordExchange records the duration of a completed pipeline run.
func (m *Metrics) RecordExchange(durationSeconds float64) {
	if m == nil {
		return
	}
	m.ExchangeDuration.Observe(durationSeconds)
}

// RecordTranscription records one speech-to-text attempt.
func (m *Metrics) RecordTranscription(provider, outcome string, latencySeconds float64) {
	if m == nil {
		return
	}
	m.STTLatency.WithLabelValues(provider).Observe(latencySeconds)
	m.STTResults.WithLabelValues(provider, outcome).Inc()
}

// RecordReply records one reply, remote or not. Latency is only observed for
// remote attempts.
func (m *Metrics) RecordReply(provider, outcome string, latencySeconds float64, remote bool) {
	if m == nil {
		return
	}
	if remote {
		m.LLMLatency.WithLabelValues(provider).Observe(latencySeconds)
	}
	m.LLMResults.WithLabelValues(provider, outcome).Inc()
}

// RecordPublish records an exchange event publish.
func (m *Metrics) RecordPublish(topic string, err error) {
	if m == nil {
		return
	}
	m.PublishTotal.WithLabelValues(topic).Inc()
	if err != nil {
		m.PublishErrors.WithLabelValues(topic).Inc()
	}
}
