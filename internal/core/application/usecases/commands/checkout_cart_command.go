package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrCheckoutCartCommandIsNotConstructed = errors.New(
	"CheckoutCartCommand must be created via NewCheckoutCartCommand constructor",
)

// CheckoutCartCommand turns the session's cart into an order. Placement
// details are validated by the order aggregate, so a missing address for a
// delivery order surfaces as *errs.MalformedOrderError from the handler.
//
// Example:
//
//	cmd, err := NewCheckoutCartCommand("session-1", kernel.NewUUID(), order.Placement{
//	    CustomerName: "Maria",
//	    Mode:         order.Pickup,
//	})
type CheckoutCartCommand struct { //nolint:recvcheck //using for validation
	session   string
	orderID   kernel.UUID
	placement order.Placement

	guard guard.ConstructorGuard
}

func NewCheckoutCartCommand(session string, orderID kernel.UUID, placement order.Placement) (CheckoutCartCommand, error) {
	s, sessionErr := validateSession(session)
	if err := errors.Join(sessionErr, orderID.Validate(), placement.Mode.Validate()); err != nil {
		return CheckoutCartCommand{}, err
	}

	return CheckoutCartCommand{
		session:   s,
		orderID:   orderID,
		placement: placement,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CheckoutCartCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCartCommandIsNotConstructed)
}

func (c CheckoutCartCommand) Session() string {
	return c.session
}

func (c CheckoutCartCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CheckoutCartCommand) Placement() order.Placement {
	return c.placement
}
