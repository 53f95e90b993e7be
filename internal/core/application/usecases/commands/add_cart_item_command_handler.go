package commands

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/ports"
)

// AddCartItemResult is the cart after the add and what the add did.
// When Outcome reports a pending conflict the cart is unchanged apart from
// the parked candidate.
type AddCartItemResult struct {
	Cart    *cart.Cart
	Outcome cart.AddOutcome
}

// AddCartItemCommandHandler adds dishes to carts. With a Confirmer the
// cross-supplier question is asked inline and resolved before returning;
// without one the conflict is left pending for ResolveCartConflictCommand.
type AddCartItemCommandHandler struct {
	storage   ports.CartStorage
	locks     *SessionLocks
	confirmer ports.Confirmer
}

func NewAddCartItemCommandHandler(
	storage ports.CartStorage,
	locks *SessionLocks,
	confirmer ports.Confirmer,
) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		storage:   storage,
		locks:     locks,
		confirmer: confirmer,
	}
}

// Handle adds the item and persists the cart. A pending conflict is saved
// before the Confirmer is asked, so a lost answer leaves it resolvable later.
// The answer is only applied to the candidate it was asked about; when another
// add replaced it meanwhile cart.ErrConflictChanged is returned.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (AddCartItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return AddCartItemResult{}, err
	}

	var outcome cart.AddOutcome
	c, err := cartMutation(ctx, h.storage, h.locks, cmd.Session(), func(c *cart.Cart) error {
		var addErr error
		outcome, addErr = c.AddItem(cmd.Dish(), cmd.Quantity())
		return addErr
	})
	if err != nil {
		return AddCartItemResult{}, err
	}

	candidate, pending := outcome.Candidate()
	if !pending || h.confirmer == nil {
		return AddCartItemResult{Cart: c, Outcome: outcome}, nil
	}

	confirmed, err := h.confirmer.Confirm(ctx, candidate)
	if err != nil {
		return AddCartItemResult{}, err
	}

	c, err = cartMutation(ctx, h.storage, h.locks, cmd.Session(), func(c *cart.Cart) error {
		return c.ResolveConflictFor(candidate, confirmed)
	})
	if err != nil {
		return AddCartItemResult{}, err
	}

	return AddCartItemResult{Cart: c}, nil
}

