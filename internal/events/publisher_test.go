package events

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/arunika/relay/domain/entities"
)

func TestNew_DisabledMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"nil brokers", Config{Topic: "voice-relay.exchanges"}},
		{"empty brokers", Config{Brokers: []string{}, Topic: "voice-relay.exchanges"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.cfg, nil, zaptest.NewLogger(t))
			if p.enabled {
				t.Error("expected publisher to be disabled")
			}
			if p.writer != nil {
				t.Error("expected nil writer when disabled")
			}
			if p.topic != "voice-relay.exchanges" {
				t.Errorf("topic = %q", p.topic)
			}
		})
	}
}

func TestNew_Enabled(t *testing.T) {
	p := New(Config{Brokers: []string{"localhost:9092"}, Topic: "exchanges"}, nil, zaptest.NewLogger(t))
	defer p.Close()

	if !p.enabled || p.writer == nil {
		t.Fatal("expected enabled publisher with writer")
	}
	if p.writer.Topic != "exchanges" {
		t.Errorf("writer topic = %q", p.writer.Topic)
	}
}

func TestPublisher_PublishExchange_Disabled(t *testing.T) {
	p := New(Config{Topic: "exchanges"}, nil, zaptest.NewLogger(t))

	err := p.PublishExchange(context.Background(), entities.Exchange{
		RequestID:   "req-1",
		AudioBytes:  4,
		Transcript:  entities.TranscriptResult{Text: "hi there", Outcome: entities.TranscriptRecognized},
		Reply:       entities.ReplyResult{Text: "Hello!", Outcome: entities.ReplyGenerated},
		DurationMs:  12,
		CompletedAt: time.Now(),
	})
	if err != nil {
		t.Errorf("PublishExchange() error = %v", err)
	}

	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
