package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Placement carries what the customer supplies at checkout.
// DeliveryAddress is required for Delivery and dropped for Pickup.
type Placement struct {
	CustomerName    string
	CustomerContact string
	Mode            FulfillmentMode
	DeliveryAddress string
	Notes           string
}

// Order is the aggregate root for a pedido. It is created once at checkout
// with status New and is afterwards changed only through ChangeStatus (guided,
// validated against the transition table) or OverrideStatus (manual, unrestricted).
// Orders are never deleted; they end in a terminal status.
type Order struct {
	id              kernel.UUID
	supplier        catalog.Supplier
	customerName    string
	customerContact string
	items           []Item
	totalValue      kernel.Money
	mode            FulfillmentMode
	deliveryAddress string
	notes           string
	status          Status
	placedAt        time.Time

	isConstructed bool
}

// NewOrder validates the placement and builds an order in status New whose
// total is the sum of its line subtotals. Every item must come from supplier.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), supplier, items, order.Placement{
//	    CustomerName:    "Maria",
//	    Mode:            order.Delivery,
//	    DeliveryAddress: "Rua das Flores, 10",
//	}, time.Now())
func NewOrder(
	id kernel.UUID,
	supplier catalog.Supplier,
	items []Item,
	placement Placement,
	placedAt time.Time,
) (*Order, error) {
	total, err := sumLines(items)
	if err != nil {
		return nil, errs.NewMalformedOrderErrorWithCause("total", err)
	}
	return RestoreOrder(id, supplier, items, placement, New, total, placedAt)
}

// RestoreOrder rebuilds an order read back from persistence. A zero
// totalValue is accepted; TotalValue then recomputes it from the lines.
func RestoreOrder(
	id kernel.UUID,
	supplier catalog.Supplier,
	items []Item,
	placement Placement,
	status Status,
	totalValue kernel.Money,
	placedAt time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), supplier.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	// an absent total is treated like a zero one
	if err := totalValue.Validate(); err != nil {
		totalValue = kernel.ZeroMoney()
	}

	o := &Order{
		id:              id,
		supplier:        supplier,
		customerName:    strings.TrimSpace(placement.CustomerName),
		customerContact: strings.TrimSpace(placement.CustomerContact),
		items:           make([]Item, 0, len(items)),
		totalValue:      totalValue,
		mode:            placement.Mode,
		deliveryAddress: strings.TrimSpace(placement.DeliveryAddress),
		notes:           strings.TrimSpace(placement.Notes),
		status:          status,
		placedAt:        placedAt,
		isConstructed:   true,
	}

	if err := o.setItems(items); err != nil {
		return nil, err
	}
	if err := o.validatePlacement(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Supplier() catalog.Supplier {
	return o.supplier
}

func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerContact is the customer's phone number, possibly empty.
func (o *Order) CustomerContact() string {
	return o.customerContact
}

// Items returns a copy of the order lines in the order they were placed.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// TotalValue returns the stored total, falling back to the sum of line
// subtotals when the stored total is zero.
func (o *Order) TotalValue() kernel.Money {
	if !o.totalValue.IsZero() {
		return o.totalValue
	}
	// setItems already proved the sum fits
	total, _ := sumLines(o.items)
	return total
}

func (o *Order) FulfillmentMode() FulfillmentMode {
	return o.mode
}

// DeliveryAddress is empty for pickup orders.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// LegalTransitions returns the guided actions for the order's current status
// and fulfillment mode.
func (o *Order) LegalTransitions() []Transition {
	return LegalTransitions(o.status, o.mode)
}

// ChangeStatus applies a guided transition. The order is left unchanged and an
// *errs.InvalidTransitionError returned when the table does not allow it.
func (o *Order) ChangeStatus(to Status) error {
	if err := ValidateTransition(o.status, to, o.mode); err != nil {
		return err
	}
	o.status = to
	return nil
}

// OverrideStatus sets any valid status regardless of the transition table.
// It exists to correct operator mistakes.
func (o *Order) OverrideStatus(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	o.status = to
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewMalformedOrderError("order has no items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewMalformedOrderErrorWithCause(fmt.Sprintf("item %d", i), err)
		}
		if !item.Dish().Supplier().IsSame(o.supplier) {
			return errs.NewMalformedOrderError(fmt.Sprintf(
				"item %q belongs to another supplier", item.Dish().Name()))
		}
		o.items = append(o.items, item)
	}
	if _, err := sumLines(o.items); err != nil {
		return errs.NewMalformedOrderErrorWithCause("total", err)
	}
	return nil
}

func sumLines(items []Item) (kernel.Money, error) {
	total := kernel.ZeroMoney()
	for _, item := range items {
		var err error
		if total, err = total.Add(item.LineSubtotal()); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

func (o *Order) validatePlacement() error {
	if o.customerName == "" {
		return errs.NewMalformedOrderErrorWithCause("customer", errs.NewValueIsRequiredError("customerName"))
	}
	if o.placedAt.IsZero() {
		return errs.NewMalformedOrderErrorWithCause("placement", errs.NewValueIsRequiredError("placedAt"))
	}
	if err := o.mode.Validate(); err != nil {
		return errs.NewMalformedOrderErrorWithCause("fulfillment mode", err)
	}

	switch o.mode {
	case Delivery:
		if o.deliveryAddress == "" {
			return errs.NewMalformedOrderErrorWithCause(
				"delivery address is required for ENTREGA", errs.NewValueIsRequiredError("deliveryAddress"))
		}
	case Pickup:
		o.deliveryAddress = ""
	}

	return nil
}
