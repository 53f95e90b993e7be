package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetStatusBoardQueryIsNotConstructed = errors.New(
	"GetStatusBoardQuery must be created via NewGetStatusBoardQuery constructor",
)

// GetStatusBoardQuery asks for the five-lane board of one supplier.
//
// Example:
//
//	query, _ := NewGetStatusBoardQuery(supplierID)
//	board, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrPersistenceUnavailable) {
//	    // render the error state, not an empty board
//	}
type GetStatusBoardQuery struct {
	supplierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStatusBoardQuery(supplierID kernel.UUID) (GetStatusBoardQuery, error) {
	if err := supplierID.Validate(); err != nil {
		return GetStatusBoardQuery{}, err
	}
	return GetStatusBoardQuery{supplierID: supplierID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStatusBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusBoardQueryIsNotConstructed)
}

func (q GetStatusBoardQuery) SupplierID() kernel.UUID {
	return q.supplierID
}
