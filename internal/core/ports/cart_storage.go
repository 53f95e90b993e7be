package ports

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
)

// CartStorage is the durable key-value store behind a customer's cart.
// A session that was never saved loads as an empty cart.
type CartStorage interface {
	Load(ctx context.Context, session string) (*cart.Cart, error)

	// Save writes items, bound supplier and any pending conflict in one
	// atomic step.
	Save(ctx context.Context, session string, c *cart.Cart) error
}
