package queries

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// GetCartQueryHandler loads a cart from durable storage. An unknown session
// yields an empty cart.
type GetCartQueryHandler struct {
	storage ports.CartStorage
}

func NewGetCartQueryHandler(storage ports.CartStorage) GetCartQueryHandler {
	return GetCartQueryHandler{storage: storage}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (*cart.Cart, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	c, err := h.storage.Load(ctx, query.Session())
	if err != nil {
		return nil, errs.NewPersistenceUnavailableError("load cart", err)
	}
	return c, nil
}
