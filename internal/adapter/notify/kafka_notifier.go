package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/hanafy/storefront/internal/port"
)

// KafkaNotifier publishes notification envelopes to a topic consumed by
// the mail relay. The order ID keys the message, so retries for one order
// stay on one partition.
type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (k *KafkaNotifier) Send(ctx context.Context, n port.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.Order.ID),
		Value: data,
		Time:  time.Now().UTC(),
	})
}

func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}
