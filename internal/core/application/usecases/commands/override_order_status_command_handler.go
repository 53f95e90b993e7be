package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// OverrideOrderStatusCommandHandler sets an order to any status without
// consulting the transition table. Every override is logged at WARN.
type OverrideOrderStatusCommandHandler struct {
	writer statusWriter
	logger *slog.Logger
}

func NewOverrideOrderStatusCommandHandler(
	uowFactory UoWFactory,
	inFlight *InFlightOrders,
	now func() time.Time,
	logger *slog.Logger,
) OverrideOrderStatusCommandHandler {
	return OverrideOrderStatusCommandHandler{
		writer: newStatusWriter(uowFactory, inFlight, now),
		logger: logger.With("component", "status-override"),
	}
}

func (h OverrideOrderStatusCommandHandler) Handle(ctx context.Context, cmd OverrideOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, change, err := h.writer.write(ctx, cmd.OrderID(), order.Override, cmd.Reason(), func(o *order.Order) error {
		return o.OverrideStatus(cmd.Target())
	})
	if err != nil {
		return nil, err
	}

	h.logger.WarnContext(ctx, "manual status override",
		"order_id", change.OrderID().String(),
		"supplier_id", change.SupplierID().String(),
		"from", change.From().String(),
		"to", change.To().String(),
		"reason", change.Reason(),
	)

	return o, nil
}
