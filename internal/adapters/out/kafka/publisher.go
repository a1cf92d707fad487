// Package kafka publishes order change events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"

	"campusdelivery/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderEventPublisher writes OrderChanged events keyed by order id, so all
// changes of one order land on the same partition in commit order.
type OrderEventPublisher struct {
	w     writer
	topic string
}

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return newPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}, topic)
}

func newPublisherWithWriter(w writer, topic string) *OrderEventPublisher {
	return &OrderEventPublisher{w: w, topic: topic}
}

func (p *OrderEventPublisher) Publish(ctx context.Context, events ...ports.OrderChanged) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(event)
		if err != nil {
			return errors.Wrapf(err, "encode order %s change", event.OrderID)
		}
		msgs = append(msgs, kafka.Message{
			Topic: p.topic,
			Key:   []byte(event.OrderID),
			Value: value,
		})
	}

	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return errors.Wrap(err, "kafka publish")
	}
	return nil
}

// Close flushes pending writes.
func (p *OrderEventPublisher) Close() error {
	if c, ok := p.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
