// Package sinks holds destinations for batched security events.
package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"leetcoach/internal/platform/kafka/producer"
	audit "leetcoach/pkg/platform/audit"
)

// Slog writes each event as one structured log line. It is the default sink
// when no broker is configured.
type Slog struct {
	logger *slog.Logger
}

func NewSlog(logger *slog.Logger) *Slog {
	return &Slog{logger: logger}
}

func (s *Slog) Write(ctx context.Context, events []audit.SecurityEvent) error {
	for _, ev := range events {
		s.logger.InfoContext(ctx, "security_event",
			"log_type", "security",
			"event_id", ev.ID,
			"action", string(ev.Action),
			"client_id", ev.ClientID,
			"endpoint", ev.Endpoint,
			"reason", ev.Reason,
			"timestamp", ev.Timestamp,
		)
	}
	return nil
}

// MessageProducer is the subset of the Kafka producer the sink needs.
type MessageProducer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// Kafka publishes events as JSON records keyed by client id so one client's
// events stay ordered within a partition.
type Kafka struct {
	producer MessageProducer
	topic    string
}

func NewKafka(p MessageProducer, topic string) *Kafka {
	return &Kafka{producer: p, topic: topic}
}

func (k *Kafka) Write(ctx context.Context, events []audit.SecurityEvent) error {
	for _, ev := range events {
		value, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal security event: %w", err)
		}
		msg := &producer.Message{
			Topic: k.topic,
			Key:   []byte(ev.ClientID),
			Value: value,
			Headers: map[string]string{
				"event_type": string(ev.Action),
				"event_id":   ev.ID,
			},
		}
		if err := k.producer.Produce(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// Memory keeps events for inspection in tests and the e2e harness.
type Memory struct {
	mu     sync.Mutex
	events []audit.SecurityEvent
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Write(_ context.Context, events []audit.SecurityEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

// Events returns a copy of everything written so far.
func (m *Memory) Events() []audit.SecurityEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]audit.SecurityEvent(nil), m.events...)
}

// ByAction filters recorded events.
func (m *Memory) ByAction(action audit.Action) []audit.SecurityEvent {
	var out []audit.SecurityEvent
	for _, ev := range m.Events() {
		if ev.Action == action {
			out = append(out, ev)
		}
	}
	return out
}
