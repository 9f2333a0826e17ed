// internal/events/kafka.go
package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher fans notification events out on a single topic. Events
// are keyed by the internal store id so all events of one store land in
// one partition, in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

func (k *KafkaPublisher) PublishNotification(ctx context.Context, event NotificationEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.StoreID),
		Value: msg,
	})
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}
