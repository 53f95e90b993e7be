package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is an order line. It never changes once the order exists:
// lineSubtotal = unitPrice × quantity.
type Item struct { //nolint:recvcheck //using for validation
	dish         catalog.Dish
	quantity     int
	unitPrice    kernel.Money
	lineSubtotal kernel.Money
	guard        guard.ConstructorGuard
}

// NewItem prices the line with the dish snapshot's price.
func NewItem(dish catalog.Dish, quantity int) (Item, error) {
	if err := dish.Validate(); err != nil {
		return Item{}, err
	}
	return RestoreItem(dish, quantity, dish.Price())
}

// RestoreItem rebuilds a line with the unit price recorded at order time.
func RestoreItem(dish catalog.Dish, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := errors.Join(dish.Validate(), unitPrice.Validate()); err != nil {
		return Item{}, err
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	subtotal, err := unitPrice.Multiply(quantity)
	if err != nil {
		return Item{}, err
	}

	return Item{
		dish:         dish,
		quantity:     quantity,
		unitPrice:    unitPrice,
		lineSubtotal: subtotal,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) Dish() catalog.Dish {
	return i.dish
}

func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice is the dish price at the moment the order was placed.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i Item) LineSubtotal() kernel.Money {
	return i.lineSubtotal
}
