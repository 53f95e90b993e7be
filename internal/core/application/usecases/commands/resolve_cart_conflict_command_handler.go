package commands

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/ports"
)

// ResolveCartConflictCommandHandler applies the customer's decision on a
// parked cross-supplier item. Returns cart.ErrNoPendingConflict when nothing
// is parked.
type ResolveCartConflictCommandHandler struct {
	storage ports.CartStorage
	locks   *SessionLocks
}

func NewResolveCartConflictCommandHandler(storage ports.CartStorage, locks *SessionLocks) ResolveCartConflictCommandHandler {
	return ResolveCartConflictCommandHandler{storage: storage, locks: locks}
}

func (h ResolveCartConflictCommandHandler) Handle(ctx context.Context, cmd ResolveCartConflictCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return cartMutation(ctx, h.storage, h.locks, cmd.Session(), func(c *cart.Cart) error {
		return c.ResolveConflict(cmd.Confirmed())
	})
}
