package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer reads change events from the changes topic as part of a
// consumer group.
type Consumer struct {
	reader *kafka.Reader
	log    *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log.With(zap.String("component", "event_consumer")),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks, delivering each change event to the handler. Returns
// when the context is cancelled or the reader fails.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, ChangeEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return fmt.Errorf("read change event: %w", err)
		}

		var event ChangeEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.log.Warn("Skipping malformed change event",
				zap.Error(err),
				zap.ByteString("key", msg.Key),
			)
			continue
		}

		if err := handler(ctx, event); err != nil {
			c.log.Error("Change event handler failed",
				zap.Error(err),
				zap.String("table", event.Table),
				zap.String("entity_id", event.EntityID),
			)
			return err
		}
	}
}
