// Package events publishes itinerary change notifications.
// Publishing happens after the change is persisted; a failed publish never
// undoes or fails the change itself.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Event types.
const (
	EntryCreated = "itinerary.entry_created"
	EntryDeleted = "itinerary.entry_deleted"
)

// Event describes one change to a trip's itinerary.
type Event struct {
	Type       string    `json:"type"`
	TripID     uuid.UUID `json:"trip_id"`
	EntryID    uuid.UUID `json:"entry_id"`
	Date       string    `json:"date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// messageWriter is the subset of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic, keyed by trip ID so that all
// events of one trip land on the same partition in order.
type KafkaPublisher struct {
	w messageWriter
}

// Writer limits. Publishing sits on the request path, so a down broker must
// fail fast instead of using kafka-go's 10 attempts with backoff.
const (
	maxAttempts     = 2
	writeBackoffMax = 100 * time.Millisecond
	writeTimeout    = time.Second
)

// NewKafkaPublisher returns a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: newWriter(brokers, topic)}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		MaxAttempts:            maxAttempts,
		WriteBackoffMax:        writeBackoffMax,
		WriteTimeout:           writeTimeout,
	}
}

// Publish encodes e and writes it synchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	msg, err := Encode(e)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events.KafkaPublisher.Publish: %w", err)
	}
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// Encode converts e into a Kafka message with the trip ID as key.
func Encode(e Event) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("events.Encode: %w", err)
	}
	return kafka.Message{
		Key:   []byte(e.TripID.String()),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	}, nil
}
