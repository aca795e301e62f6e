package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"thgamestore/internal/domain/entity"
	"thgamestore/pkg/logger"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher emits order events. When disabled every publish is a
// no-op.
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	enabled bool
}

func NewKafkaPublisher(brokers []string, topic string, enabled bool) *KafkaPublisher {
	if !enabled || len(brokers) == 0 {
		logger.Info("Kafka publisher disabled")
		return &KafkaPublisher{topic: topic}
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka publisher initialized for topic %s", topic)
	return &KafkaPublisher{writer: w, topic: topic, enabled: true}
}

// PublishOrderPaid keys the message by user so a user's orders land on
// one partition in order.
func (p *KafkaPublisher) PublishOrderPaid(ctx context.Context, event entity.OrderPaidEvent) error {
	if !p.enabled {
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.UserID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("order.paid")},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
