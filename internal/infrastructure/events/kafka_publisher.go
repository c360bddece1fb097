package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	appinventory "github.com/mgudino/stock-ledger-api/internal/application/inventory"
	"github.com/mgudino/stock-ledger-api/internal/domain/inventory"
	"github.com/mgudino/stock-ledger-api/pkg/logger"
)

var _ appinventory.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher forwards domain events to a Kafka topic. Events are
// fire-and-forget observers of committed state: write failures are logged
// and never surface to the mutation path.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaPublisher builds the publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		log: log,
	}
}

// Publish serializes each event as JSON, keyed by event name.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...inventory.Event) {
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			p.log.Error().Err(err).Str("event", ev.EventName()).Msg("marshal domain event")
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(ev.EventName()),
			Value: payload,
		})
	}
	if len(msgs) == 0 {
		return
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.log.Error().Err(err).Int("events", len(msgs)).Msg("publish domain events")
	}
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
