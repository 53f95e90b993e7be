package commands

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/ports"
)

// ClearCartCommandHandler empties a cart and unbinds its supplier.
type ClearCartCommandHandler struct {
	storage ports.CartStorage
	locks   *SessionLocks
}

func NewClearCartCommandHandler(storage ports.CartStorage, locks *SessionLocks) ClearCartCommandHandler {
	return ClearCartCommandHandler{storage: storage, locks: locks}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return cartMutation(ctx, h.storage, h.locks, cmd.Session(), func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}
