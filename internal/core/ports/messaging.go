package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// MessageLinkBuilder turns a phone number and an already escaped message into
// a link for the external messaging channel. Delivery is out of scope.
type MessageLinkBuilder interface {
	Link(phone, escapedMessage string) (string, error)
	QRCode(link string, size int) ([]byte, error)
}

// OrderEventPublisher emits committed status changes to downstream consumers.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, change order.StatusChange) error
}
