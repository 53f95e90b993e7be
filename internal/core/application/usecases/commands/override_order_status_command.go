package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const maxOverrideReasonLength = 500

var ErrOverrideOrderStatusCommandIsNotConstructed = errors.New(
	"OverrideOrderStatusCommand must be created via NewOverrideOrderStatusCommand constructor",
)

// OverrideOrderStatusCommand forces an order into any status. The reason is
// optional and is kept in the audit trail.
type OverrideOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	reason  string

	guard guard.ConstructorGuard
}

func NewOverrideOrderStatusCommand(orderID kernel.UUID, target order.Status, reason string) (OverrideOrderStatusCommand, error) {
	cmd := OverrideOrderStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(orderID.Validate(), target.Validate(), cmd.setReason(reason)); err != nil {
		return OverrideOrderStatusCommand{}, err
	}
	cmd.orderID = orderID
	cmd.target = target

	return cmd, nil
}

func (c OverrideOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrOverrideOrderStatusCommandIsNotConstructed)
}

func (c OverrideOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c OverrideOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c OverrideOrderStatusCommand) Reason() string {
	return c.reason
}

func (c *OverrideOrderStatusCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if len(reason) > maxOverrideReasonLength {
		return errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxOverrideReasonLength)
	}
	c.reason = reason
	return nil
}
