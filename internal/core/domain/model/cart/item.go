package cart

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// MaxLineQuantity caps the units of one dish in a cart.
const MaxLineQuantity = 999

// Item is one cart line. Quantity is always between 1 and MaxLineQuantity; a
// line whose quantity would drop to zero is removed from the cart instead.
type Item struct { //nolint:recvcheck //using for validation
	dish     catalog.Dish
	quantity int
	guard    guard.ConstructorGuard
}

func NewItem(dish catalog.Dish, quantity int) (Item, error) {
	if err := dish.Validate(); err != nil {
		return Item{}, err
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxLineQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxLineQuantity)
	}
	if _, err := dish.Price().Multiply(quantity); err != nil {
		return Item{}, err
	}
	return Item{dish: dish, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
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

// Subtotal is the dish price captured at add time multiplied by the quantity.
func (i Item) Subtotal() kernel.Money {
	// NewItem rejected quantities whose product overflows
	subtotal, _ := i.dish.Price().Multiply(i.quantity)
	return subtotal
}
