package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand adds quantity units of a dish to the session's cart.
//
// Example:
//
//	cmd, err := NewAddCartItemCommand("session-1", dish, 2)
//	if err != nil {
//	    return fmt.Errorf("invalid cart item: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if result.Outcome.IsConflictPending() {
//	    // ask the customer, then ResolveCartConflictCommand
//	}
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	session  string
	dish     catalog.Dish
	quantity int

	guard guard.ConstructorGuard
}

func NewAddCartItemCommand(session string, dish catalog.Dish, quantity int) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setSession(session),
		cmd.setDish(dish),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) Session() string {
	return c.session
}

func (c AddCartItemCommand) Dish() catalog.Dish {
	return c.dish
}

func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func (c *AddCartItemCommand) setSession(session string) error {
	s, err := validateSession(session)
	if err != nil {
		return err
	}
	c.session = s
	return nil
}

func (c *AddCartItemCommand) setDish(dish catalog.Dish) error {
	if err := dish.Validate(); err != nil {
		return err
	}
	c.dish = dish
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}
