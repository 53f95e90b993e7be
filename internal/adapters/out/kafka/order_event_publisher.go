// Package kafka publishes committed order status changes to a Kafka topic,
// keyed by order id so the changes of one order stay in sequence.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
)

// OrderStatusChangedEvent is the message value written for every change.
type OrderStatusChangedEvent struct {
	OrderID    string    `json:"orderId"`
	SupplierID string    `json:"supplierId"`
	Mode       string    `json:"fulfillmentMode"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Kind       string    `json:"kind"`
	Reason     string    `json:"reason,omitempty"`
	ChangedAt  time.Time `json:"changedAt"`
}

func NewOrderStatusChangedEvent(change order.StatusChange) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		OrderID:    change.OrderID().String(),
		SupplierID: change.SupplierID().String(),
		Mode:       change.Mode().String(),
		From:       change.From().String(),
		To:         change.To().String(),
		Kind:       change.Kind().String(),
		Reason:     change.Reason(),
		ChangedAt:  change.ChangedAt().UTC(),
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type OrderEventPublisher struct {
	writer messageWriter
}

// NewOrderEventPublisher wraps writer. Any *kafkago.Writer fits.
func NewOrderEventPublisher(writer messageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer}
}

// NewWriter builds the producer for topic on the given broker.
func NewWriter(broker, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func (p *OrderEventPublisher) PublishStatusChanged(ctx context.Context, change order.StatusChange) error {
	if err := change.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(NewOrderStatusChangedEvent(change))
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(change.OrderID().String()),
		Value: payload,
	})
}

// NoopPublisher drops every event. It stands in when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChanged(context.Context, order.StatusChange) error {
	return nil
}
