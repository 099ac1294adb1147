// Package publisher contains audit.Publisher implementations.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"kycgate/internal/platform/kafka/producer"
	audit "kycgate/pkg/platform/audit"
)

// MessageProducer is the slice of the Kafka producer the publisher needs.
type MessageProducer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// KafkaPublisher JSON-encodes events onto a topic, keyed by customer code so
// all events for one customer land on the same partition.
type KafkaPublisher struct {
	producer MessageProducer
	topic    string
	logger   *slog.Logger
}

// Option configures the KafkaPublisher.
type Option func(*KafkaPublisher)

// WithLogger sets a logger for delivery diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

// NewKafkaPublisher creates a publisher writing to topic.
func NewKafkaPublisher(p MessageProducer, topic string, opts ...Option) *KafkaPublisher {
	kp := &KafkaPublisher{producer: p, topic: topic}
	for _, opt := range opts {
		opt(kp)
	}
	return kp
}

// Emit encodes and produces the event synchronously.
func (p *KafkaPublisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	err = p.producer.Produce(ctx, &producer.Message{
		Topic: p.topic,
		Key:   []byte(event.CustomerCode),
		Value: payload,
		Headers: map[string]string{
			"event":      string(event.Action),
			"request_id": event.RequestID,
		},
	})
	if err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "audit event delivery failed",
				"action", event.Action,
				"customer_code", event.CustomerCode,
				"error", err,
			)
		}
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}

// Noop discards events. Used when Kafka is not configured.
type Noop struct{}

func (Noop) Emit(context.Context, audit.Event) error { return nil }

// Recorder keeps events in memory. Used in tests and sandbox runs.
type Recorder struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(_ context.Context, event audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []audit.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]audit.Event(nil), r.events...)
}

var (
	_ audit.Publisher = (*KafkaPublisher)(nil)
	_ audit.Publisher = Noop{}
	_ audit.Publisher = (*Recorder)(nil)
)
