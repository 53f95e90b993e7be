package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// statusWriter is the part shared by guided transitions and overrides: one
// write per order at a time, the new status and its audit row committed
// together, infrastructure failures reported as PersistenceUnavailable.
type statusWriter struct {
	uowFactory UoWFactory
	inFlight   *InFlightOrders
	now        func() time.Time
}

func newStatusWriter(uowFactory UoWFactory, inFlight *InFlightOrders, now func() time.Time) statusWriter {
	if now == nil {
		now = time.Now
	}
	return statusWriter{uowFactory: uowFactory, inFlight: inFlight, now: now}
}

// write loads the order, lets apply change it and persists the result. The
// stored order is untouched when apply fails.
func (w statusWriter) write(
	ctx context.Context,
	orderID kernel.UUID,
	kind order.ChangeKind,
	reason string,
	apply func(o *order.Order) error,
) (*order.Order, order.StatusChange, error) {
	release, err := w.inFlight.Acquire(orderID)
	if err != nil {
		return nil, order.StatusChange{}, err
	}
	defer release()

	uow := w.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, order.StatusChange{}, errs.NewPersistenceUnavailableError("begin status change", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, order.StatusChange{}, err
	}
	if err != nil {
		return nil, order.StatusChange{}, errs.NewPersistenceUnavailableError("load order", err)
	}

	from := o.Status()
	if err = apply(o); err != nil {
		return nil, order.StatusChange{}, err
	}

	change, err := order.NewStatusChange(o, from, kind, reason, w.now())
	if err != nil {
		return nil, order.StatusChange{}, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, order.StatusChange{}, errs.NewPersistenceUnavailableError("update order status", err)
	}
	if err = uow.StatusChangeRepository().Add(ctx, change); err != nil {
		return nil, order.StatusChange{}, errs.NewPersistenceUnavailableError("record status change", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.StatusChange{}, errs.NewPersistenceUnavailableError("commit status change", err)
	}

	return o, change, nil
}
