package catalog

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrSupplierIsNotConstructed = errors.New("Supplier must be created via NewSupplier constructor")

// Supplier references the fornecedor that fulfils an order.
type Supplier struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	name  string
	guard guard.ConstructorGuard
}

func NewSupplier(id kernel.UUID, name string) (Supplier, error) {
	if err := id.Validate(); err != nil {
		return Supplier{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Supplier{}, errs.NewValueIsRequiredError("supplier name")
	}
	return Supplier{id: id, name: name, guard: guard.NewConstructorGuard()}, nil
}

func (s Supplier) Validate() error {
	return s.guard.Validate(ErrSupplierIsNotConstructed)
}

func (s Supplier) ID() kernel.UUID {
	return s.id
}

func (s Supplier) Name() string {
	return s.name
}

// IsSame compares suppliers by identity only.
func (s Supplier) IsSame(other Supplier) bool {
	return s.id.IsEqual(other.id)
}
