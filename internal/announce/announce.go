// Package announce publishes reseed events to Kafka so downstream consumers
// (query services, cache invalidators) learn a collection was rebuilt.
// Announcing is optional and best-effort: a publish failure is the caller's
// to log, never a reason to fail the seeding run.
package announce

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "kb.reseeded"

// Event describes one completed reseed.
type Event struct {
	Dataset    string    `json:"dataset"`
	Collection string    `json:"collection"`
	Count      int       `json:"count"`
	At         time.Time `json:"at"`
}

// Brokers reads KAFKA_BROKERS as a comma-separated list. Empty means
// announcing is disabled.
func Brokers() []string {
	raw := os.Getenv("KAFKA_BROKERS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Publisher writes reseed events to one topic.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Publisher) PublishReseed(ctx context.Context, ev Event) error {
	if p == nil || p.writer == nil {
		return nil
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal reseed event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(MessageKey(ev)),
		Value: payload,
	}
	return p.writer.WriteMessages(ctx, msg)
}

// MessageKey builds the partition key for an event.
func MessageKey(ev Event) string {
	return fmt.Sprintf("%s-%d", ev.Collection, ev.At.UnixNano())
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
