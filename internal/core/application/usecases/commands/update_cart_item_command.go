package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateCartItemCommandIsNotConstructed = errors.New(
	"UpdateCartItemCommand must be created via NewUpdateCartItemCommand constructor",
)

// UpdateCartItemCommand sets the quantity of a cart line. A quantity of zero
// or less removes the line, which is also how RemoveItem is expressed.
//
// Example:
//
//	remove, _ := NewUpdateCartItemCommand("session-1", dishID, 0)
//	c, err := handler.Handle(ctx, remove)
type UpdateCartItemCommand struct { //nolint:recvcheck //using for validation
	session  string
	dishID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

func NewUpdateCartItemCommand(session string, dishID kernel.UUID, quantity int) (UpdateCartItemCommand, error) {
	cmd := UpdateCartItemCommand{quantity: quantity, guard: guard.NewConstructorGuard()}

	s, sessionErr := validateSession(session)
	if err := errors.Join(sessionErr, dishID.Validate()); err != nil {
		return UpdateCartItemCommand{}, err
	}
	cmd.session = s
	cmd.dishID = dishID

	return cmd, nil
}

func (c UpdateCartItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemCommandIsNotConstructed)
}

func (c UpdateCartItemCommand) Session() string {
	return c.session
}

func (c UpdateCartItemCommand) DishID() kernel.UUID {
	return c.dishID
}

func (c UpdateCartItemCommand) Quantity() int {
	return c.quantity
}
