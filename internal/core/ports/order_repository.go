// Package ports defines the contracts between the order lifecycle core and
// its infrastructure: persistence, durable cart storage, the confirmation
// dialog, the messaging channel and the event stream.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order's status. Items and totals never change
	// after checkout.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier. Returns
	// *errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListBySupplier returns every order of the supplier, oldest first.
	ListBySupplier(ctx context.Context, supplierID kernel.UUID) ([]*order.Order, error)
}

// StatusChangeRepository appends to the audit trail of status writes.
type StatusChangeRepository interface {
	Add(ctx context.Context, change order.StatusChange) error
}
