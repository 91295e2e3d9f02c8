// Package events publishes processed exchanges to Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/satriahrh/arunika/relay/domain/entities"
	"github.com/satriahrh/arunika/relay/domain/repositories"
	"github.com/satriahrh/arunika/relay/internal/observability/metrics"
)

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Publisher writes one event per exchange. Without brokers it only logs.
type Publisher struct {
	writer  *kafka.Writer
	topic   string
	enabled bool
	metrics *metrics.Metrics
	logger  *zap.Logger
}

var _ repositories.ExchangePublisher = (*Publisher)(nil)

// New creates a new exchange publisher.
func New(cfg Config, m *metrics.Metrics, logger *zap.Logger) *Publisher {
	if len(cfg.Brokers) == 0 {
		logger.Info("Kafka disabled, using log-only mode")
		return &Publisher{
			topic:   cfg.Topic,
			metrics: m,
			logger:  logger,
		}
	}

	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    &kafka.Transport{Dial: dialer.DialFunc},
	}

	logger.Info("Kafka publisher initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic))

	return &Publisher{
		writer:  writer,
		topic:   cfg.Topic,
		enabled: true,
		metrics: m,
		logger:  logger,
	}
}

// PublishExchange implements repositories.ExchangePublisher
func (p *Publisher) PublishExchange(ctx context.Context, exchange entities.Exchange) error {
	payload, err := json.Marshal(exchange)
	if err != nil {
		p.logger.Error("Failed to marshal exchange", zap.Error(err))
		return err
	}

	p.logger.Debug("Publishing exchange",
		zap.String("topic", p.topic),
		zap.String("requestID", exchange.RequestID),
		zap.ByteString("payload", payload))

	if !p.enabled || p.writer == nil {
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(exchange.RequestID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte("exchange")},
		},
	}

	err = p.writer.WriteMessages(ctx, msg)
	p.metrics.RecordPublish(p.topic, err)
	if err != nil {
		p.logger.Error("Failed to write to Kafka",
			zap.String("topic", p.topic),
			zap.String("requestID", exchange.RequestID),
			zap.Error(err))
		return err
	}

	return nil
}

// Close flushes and closes the Kafka writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
