package event

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// Topic is the single topic all ledger events are published to.
const Topic = "khata.events"

// Kafka publishes events to a Kafka topic, keyed by username so one user's
// events stay ordered within a partition.
type Kafka struct {
	writer *kafka.Writer
}

// NewKafka returns a publisher writing to the given brokers.
func NewKafka(brokers []string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    Topic,
			Balancer: &kafka.Hash{},
		},
	}
}

func (p *Kafka) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Username),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *Kafka) Close() error { return p.writer.Close() }

var _ Publisher = (*Kafka)(nil)
