package ports

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
)

// Confirmer asks the customer whether to drop the current cart in favour of
// candidate, which comes from a different supplier. It must only return once
// the customer answered or ctx is done.
type Confirmer interface {
	Confirm(ctx context.Context, candidate cart.Item) (bool, error)
}
