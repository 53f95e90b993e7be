package catalog

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrDishIsNotConstructed = errors.New("Dish must be created via NewDish constructor")

// Dish is the snapshot of a catalog dish taken when it is added to a cart.
// Price changes in the catalog afterwards do not reach an existing snapshot.
type Dish struct { //nolint:recvcheck //using for validation
	id       kernel.UUID
	name     string
	price    kernel.Money
	imageURL string
	supplier Supplier
	guard    guard.ConstructorGuard
}

// NewDish validates and builds a dish snapshot. imageURL is optional.
func NewDish(id kernel.UUID, name string, price kernel.Money, imageURL string, supplier Supplier) (Dish, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("dish name")
	}

	if err := errors.Join(
		id.Validate(),
		nameErr,
		price.Validate(),
		supplier.Validate(),
	); err != nil {
		return Dish{}, err
	}

	return Dish{
		id:       id,
		name:     name,
		price:    price,
		imageURL: strings.TrimSpace(imageURL),
		supplier: supplier,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (d Dish) Validate() error {
	return d.guard.Validate(ErrDishIsNotConstructed)
}

func (d Dish) ID() kernel.UUID {
	return d.id
}

func (d Dish) Name() string {
	return d.name
}

func (d Dish) Price() kernel.Money {
	return d.price
}

// ImageURL is empty when the dish has no picture.
func (d Dish) ImageURL() string {
	return d.imageURL
}

func (d Dish) Supplier() Supplier {
	return d.supplier
}
