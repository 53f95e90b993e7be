package queries

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// GetOrderSummaryQueryHandler formats an order for the customer and builds
// the messaging link. The greeting follows the time the summary is requested.
type GetOrderSummaryQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	formatter  services.SummaryFormatter
	links      ports.MessageLinkBuilder
	now        func() time.Time
}

func NewGetOrderSummaryQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	formatter services.SummaryFormatter,
	links ports.MessageLinkBuilder,
	now func() time.Time,
) GetOrderSummaryQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GetOrderSummaryQueryHandler{
		uowFactory: uowFactory,
		formatter:  formatter,
		links:      links,
		now:        now,
	}
}

func (h GetOrderSummaryQueryHandler) Handle(ctx context.Context, query GetOrderSummaryQuery) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, query.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return GetOrderSummaryQueryResponse{}, err
	}
	if err != nil {
		return GetOrderSummaryQueryResponse{}, errs.NewPersistenceUnavailableError("load order", err)
	}

	message, err := h.formatter.Format(o, h.now())
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	resp := GetOrderSummaryQueryResponse{
		OrderID: o.ID(),
		Phone:   o.CustomerContact(),
		Message: message,
	}
	if resp.Phone == "" {
		return resp, nil
	}

	link, err := h.links.Link(resp.Phone, message)
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid):
		// free-text contact that is not a phone number: no link
		return resp, nil
	case err != nil:
		return GetOrderSummaryQueryResponse{}, err
	}

	resp.Link = link
	return resp, nil
}
