package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CheckoutCartCommandHandler hands the cart snapshot to order creation and
// clears the cart once the order is committed. Unit prices are taken from
// the dishes captured in the cart; the catalog is not consulted again.
type CheckoutCartCommandHandler struct {
	storage    ports.CartStorage
	locks      *SessionLocks
	uowFactory UoWFactory
	now        func() time.Time
	logger     *slog.Logger
}

func NewCheckoutCartCommandHandler(
	storage ports.CartStorage,
	locks *SessionLocks,
	uowFactory UoWFactory,
	now func() time.Time,
	logger *slog.Logger,
) CheckoutCartCommandHandler {
	if now == nil {
		now = time.Now
	}
	return CheckoutCartCommandHandler{
		storage:    storage,
		locks:      locks,
		uowFactory: uowFactory,
		now:        now,
		logger:     logger.With("component", "checkout"),
	}
}

// Handle creates the order. The cart is left untouched when anything before
// the commit fails. If only the final cart write fails the order stands and
// the failure is logged, since retrying would place the order twice.
func (h CheckoutCartCommandHandler) Handle(ctx context.Context, cmd CheckoutCartCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(cmd.Session())
	defer unlock()

	c, err := h.storage.Load(ctx, cmd.Session())
	if err != nil {
		return nil, errs.NewPersistenceUnavailableError("load cart", err)
	}
	if c.IsEmpty() {
		return nil, cart.ErrCartIsEmpty
	}

	o, err := buildOrder(cmd, c, h.now())
	if err != nil {
		return nil, err
	}

	if err = h.persist(ctx, o); err != nil {
		return nil, err
	}

	c.Clear()
	if err = h.storage.Save(ctx, cmd.Session(), c); err != nil {
		h.logger.ErrorContext(ctx, "order placed but cart could not be cleared",
			"order_id", o.ID().String(), "error", err)
	}

	return o, nil
}

func (h CheckoutCartCommandHandler) persist(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.NewPersistenceUnavailableError("begin checkout", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return errs.NewPersistenceUnavailableError("create order", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return errs.NewPersistenceUnavailableError("commit checkout", err)
	}

	return nil
}

func buildOrder(cmd CheckoutCartCommand, c *cart.Cart, placedAt time.Time) (*order.Order, error) {
	lines := c.Items()
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem(line.Dish(), line.Quantity())
		if err != nil {
			return nil, errs.NewMalformedOrderErrorWithCause("cart line", err)
		}
		items = append(items, item)
	}

	return order.NewOrder(cmd.OrderID(), *c.BoundSupplier(), items, cmd.Placement(), placedAt)
}
