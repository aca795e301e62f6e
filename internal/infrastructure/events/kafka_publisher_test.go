package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thgamestore/internal/domain/entity"
)

type captureWriter struct {
	msgs []kafka.Message
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestDisabledPublisherIsNoop(t *testing.T) {
	p := NewKafkaPublisher(nil, "orders", true)
	assert.NoError(t, p.PublishOrderPaid(context.Background(), entity.OrderPaidEvent{OrderID: "o1"}))
	assert.NoError(t, p.Close())
}

func TestPublishOrderPaid(t *testing.T) {
	w := &captureWriter{}
	p := &KafkaPublisher{writer: w, topic: "thgamestore.orders", enabled: true}

	event := entity.OrderPaidEvent{
		OrderID:     "o1",
		UserID:      "u1",
		TotalAmount: 250,
		Items:       []entity.OrderEventItem{{GameID: "g1", UnitPrice: 100, Quantity: 1}},
		PaidAt:      time.Now().UTC(),
	}
	require.NoError(t, p.PublishOrderPaid(context.Background(), event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "thgamestore.orders", msg.Topic)
	assert.Equal(t, []byte("u1"), msg.Key)

	var decoded entity.OrderPaidEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "o1", decoded.OrderID)
	assert.Equal(t, 250.0, decoded.TotalAmount)
}
