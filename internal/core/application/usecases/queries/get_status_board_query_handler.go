package queries

import (
	"context"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// GetStatusBoardQueryHandler loads a supplier's orders and lays them out on
// the board. Nothing is partitioned when loading fails.
type GetStatusBoardQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	board      services.StatusBoard
}

func NewGetStatusBoardQueryHandler(uowFactory ports.UnitOfWorkFactory) GetStatusBoardQueryHandler {
	return GetStatusBoardQueryHandler{
		uowFactory: uowFactory,
		board:      services.NewStatusBoard(),
	}
}

func (h GetStatusBoardQueryHandler) Handle(ctx context.Context, query GetStatusBoardQuery) (services.Board, error) {
	if err := query.Validate(); err != nil {
		return services.Board{}, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().ListBySupplier(ctx, query.SupplierID())
	if err != nil {
		return services.Board{}, errs.NewPersistenceUnavailableError("list orders", err)
	}

	return h.board.Build(orders), nil
}
