package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes change events to the changes topic. Keyed by table
// name so changes to one table stay ordered.
type Producer struct {
	writer *kafka.Writer
	topic  string
	log    *zap.Logger
}

func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
		log:    log.With(zap.String("component", "event_producer")),
	}
}

func (p *Producer) Publish(ctx context.Context, event ChangeEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}

	message := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.Table),
		Value: data,
		Time:  event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		p.log.Error("Failed to publish change event",
			zap.Error(err),
			zap.String("table", event.Table),
			zap.String("action", event.Action),
			zap.String("entity_id", event.EntityID),
		)
		return fmt.Errorf("publish %s change for %s: %w", event.Table, event.EntityID, err)
	}

	p.log.Debug("Change event published",
		zap.String("table", event.Table),
		zap.String("action", event.Action),
		zap.String("entity_id", event.EntityID),
	)

	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
