// Package events publishes domain events after successful writes.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Well-known topic names.
const (
	TopicOrderCreated       = "orders.created"
	TopicOrderStatusUpdated = "orders.status_updated"
	TopicDriverAssigned     = "drivers.assigned"
	TopicReceiptUploaded    = "receipts.uploaded"
	TopicChatMessage        = "chat.messages"
)

// Envelope wraps every payload on the wire.
type Envelope struct {
	Topic      string      `json:"topic"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, data interface{}) error
	Close() error
}

// Nop discards events. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, interface{}) error { return nil }
func (Nop) Close() error { return nil }

// Kafka writes events asynchronously; delivery failures are only logged.
type Kafka struct {
	w *kafkago.Writer
}

func NewKafka(brokers []string) *Kafka {
	return &Kafka{w: &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.Hash{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		BatchTimeout:           50 * time.Millisecond,
		Completion: func(messages []kafkago.Message, err error) {
			if err != nil {
				logrus.WithError(err).WithField("count", len(messages)).Warn("kafka delivery failed")
			}
		},
	}}
}

func (k *Kafka) Publish(ctx context.Context, topic, key string, data interface{}) error {
	value, err := json.Marshal(Envelope{Topic: topic, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}
	return k.w.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
}

func (k *Kafka) Close() error { return k.w.Close() }

// New picks Kafka when brokers are configured and Nop otherwise.
func New(brokers []string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewKafka(brokers)
}
