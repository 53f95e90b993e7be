package commands

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/ports"
)

// UpdateCartItemCommandHandler changes or removes a cart line. Setting a
// positive quantity on a dish that is not in the cart returns
// *errs.ObjectNotFoundError; removing it is a no-op.
type UpdateCartItemCommandHandler struct {
	storage ports.CartStorage
	locks   *SessionLocks
}

func NewUpdateCartItemCommandHandler(storage ports.CartStorage, locks *SessionLocks) UpdateCartItemCommandHandler {
	return UpdateCartItemCommandHandler{storage: storage, locks: locks}
}

func (h UpdateCartItemCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return cartMutation(ctx, h.storage, h.locks, cmd.Session(), func(c *cart.Cart) error {
		return c.UpdateQuantity(cmd.DishID(), cmd.Quantity())
	})
}
