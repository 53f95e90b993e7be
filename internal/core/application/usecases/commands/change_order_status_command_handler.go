package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler applies guided transitions. The transition
// is checked against the table before anything is written; a rejected one
// returns *errs.InvalidTransitionError and leaves the order as it was.
//
// Example:
//
//	cmd, _ := NewChangeOrderStatusCommand(orderID, order.InPreparation)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // show the operator the allowed actions again
//	case errors.Is(err, ErrTransitionInFlight):
//	    // a previous click is still being processed
//	}
type ChangeOrderStatusCommandHandler struct {
	writer statusWriter
}

func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	inFlight *InFlightOrders,
	now func() time.Time,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{writer: newStatusWriter(uowFactory, inFlight, now)}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, _, err := h.writer.write(ctx, cmd.OrderID(), order.Guided, "", func(o *order.Order) error {
		return o.ChangeStatus(cmd.Target())
	})
	return o, err
}
