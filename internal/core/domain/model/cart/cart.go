package cart

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrNoPendingConflict is returned by ResolveConflict when no cross-supplier
	// add is waiting for a decision.
	ErrNoPendingConflict = errors.New("cart has no pending supplier conflict")

	// ErrConflictChanged is returned by ResolveConflictFor when the parked
	// candidate is no longer the one the answer was given for.
	ErrConflictChanged = errors.New("pending supplier conflict changed")

	// ErrCartIsEmpty is returned when an operation needs at least one line.
	ErrCartIsEmpty = errors.New("cart is empty")
)

// AddOutcome reports what AddItem did. A pending conflict is not an error:
// it asks the caller to obtain the customer's decision and call ResolveConflict.
type AddOutcome struct {
	conflict  bool
	candidate Item
}

// IsConflictPending reports whether the add was parked because the cart is
// bound to another supplier.
func (o AddOutcome) IsConflictPending() bool {
	return o.conflict
}

// Candidate returns the parked item when the add is pending.
func (o AddOutcome) Candidate() (Item, bool) {
	return o.candidate, o.conflict
}

// Cart is the aggregate root for a customer's cart.
//
// Invariants:
//   - supplier is nil iff items is empty
//   - every item's dish belongs to supplier
//   - at most one line per dish
type Cart struct {
	items    []Item
	supplier *catalog.Supplier
	pending  *Item
}

// NewCart returns an empty, unbound cart.
func NewCart() *Cart {
	return &Cart{items: make([]Item, 0)}
}

// RestoreCart rebuilds a cart read back from storage and checks the invariants
// so a corrupt snapshot is never handed to the domain.
func RestoreCart(items []Item, supplier *catalog.Supplier, pending *Item) (*Cart, error) {
	c := &Cart{items: make([]Item, 0, len(items))}

	if len(items) == 0 && supplier != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("cart", errors.New("empty cart cannot be bound to a supplier"))
	}
	if len(items) > 0 && supplier == nil {
		return nil, errs.NewValueIsRequiredError("cart supplier")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if !item.Dish().Supplier().IsSame(*supplier) {
			return nil, errs.NewValueIsInvalidErrorWithCause("cart", fmt.Errorf(
				"dish %s belongs to supplier %s, cart is bound to %s",
				item.Dish().ID(), item.Dish().Supplier().ID(), supplier.ID()))
		}
		if _, dup := seen[item.Dish().ID()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("cart", fmt.Errorf("dish %s appears twice", item.Dish().ID()))
		}
		seen[item.Dish().ID()] = struct{}{}
		c.items = append(c.items, item)
	}

	if _, err := sumSubtotals(c.items); err != nil {
		return nil, err
	}

	if supplier != nil {
		bound := *supplier
		c.supplier = &bound
	}

	if pending != nil {
		if err := pending.Validate(); err != nil {
			return nil, err
		}
		p := *pending
		c.pending = &p
	}

	return c, nil
}

// AddItem adds quantity units of dish. A line may not exceed MaxLineQuantity
// units; the cart is left unchanged when it would.
//
// When the cart is empty or bound to the dish's supplier the line is merged
// (quantity incremented if the dish is already there) and the supplier bound.
// When the cart is bound to another supplier nothing changes: the candidate is
// parked and the returned outcome reports a pending conflict. A newer AddItem
// supersedes a candidate that was never resolved.
func (c *Cart) AddItem(dish catalog.Dish, quantity int) (AddOutcome, error) {
	candidate, err := NewItem(dish, quantity)
	if err != nil {
		return AddOutcome{}, err
	}

	if c.supplier != nil && !c.supplier.IsSame(dish.Supplier()) {
		c.pending = &candidate
		return AddOutcome{conflict: true, candidate: candidate}, nil
	}

	items := c.Items()
	if idx := c.indexOf(dish.ID()); idx >= 0 {
		merged, err := NewItem(items[idx].Dish(), items[idx].Quantity()+quantity)
		if err != nil {
			return AddOutcome{}, err
		}
		items[idx] = merged
	} else {
		items = append(items, candidate)
	}
	if _, err = sumSubtotals(items); err != nil {
		return AddOutcome{}, err
	}

	c.pending = nil
	c.items = items
	c.bind(dish.Supplier())

	return AddOutcome{}, nil
}

// ResolveConflict applies the customer's decision on the pending candidate.
// Confirmed replaces the whole cart with the candidate alone and rebinds it to
// the candidate's supplier; declined drops the candidate and keeps the cart.
func (c *Cart) ResolveConflict(confirmed bool) error {
	if c.pending == nil {
		return ErrNoPendingConflict
	}

	candidate := *c.pending
	c.pending = nil

	if !confirmed {
		return nil
	}

	c.items = []Item{candidate}
	c.bind(candidate.Dish().Supplier())
	return nil
}

// ResolveConflictFor is ResolveConflict for an answer given about expected.
// When a newer add replaced the candidate in the meantime nothing changes
// and ErrConflictChanged is returned.
func (c *Cart) ResolveConflictFor(expected Item, confirmed bool) error {
	if c.pending == nil {
		return ErrNoPendingConflict
	}
	if !c.pending.Dish().ID().IsEqual(expected.Dish().ID()) || c.pending.Quantity() != expected.Quantity() {
		return ErrConflictChanged
	}
	return c.ResolveConflict(confirmed)
}

// RemoveItem drops the line for dishID; removing an absent dish is a no-op.
func (c *Cart) RemoveItem(dishID kernel.UUID) {
	idx := c.indexOf(dishID)
	if idx < 0 {
		return
	}

	c.items = append(c.items[:idx], c.items[idx+1:]...)
	if len(c.items) == 0 {
		c.supplier = nil
	}
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line.
func (c *Cart) UpdateQuantity(dishID kernel.UUID, quantity int) error {
	if quantity <= 0 {
		c.RemoveItem(dishID)
		return nil
	}

	idx := c.indexOf(dishID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("dishId", dishID.String())
	}

	updated, err := NewItem(c.items[idx].Dish(), quantity)
	if err != nil {
		return err
	}
	items := c.Items()
	items[idx] = updated
	if _, err = sumSubtotals(items); err != nil {
		return err
	}

	c.items = items
	return nil
}

// Clear empties the cart and unbinds the supplier. A pending candidate is
// dropped as well.
func (c *Cart) Clear() {
	c.items = make([]Item, 0)
	c.supplier = nil
	c.pending = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// BoundSupplier returns the supplier every line belongs to, or nil when empty.
func (c *Cart) BoundSupplier() *catalog.Supplier {
	if c.supplier == nil {
		return nil
	}
	s := *c.supplier
	return &s
}

// PendingConflict returns the parked candidate, if any.
func (c *Cart) PendingConflict() (Item, bool) {
	if c.pending == nil {
		return Item{}, false
	}
	return *c.pending, true
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalItemCount is the sum of quantities.
func (c *Cart) TotalItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity()
	}
	return total
}

// TotalValue is the sum of price × quantity over all lines.
func (c *Cart) TotalValue() kernel.Money {
	// every mutation checked that the sum fits
	total, _ := sumSubtotals(c.items)
	return total
}

func sumSubtotals(items []Item) (kernel.Money, error) {
	total := kernel.ZeroMoney()
	for _, item := range items {
		var err error
		if total, err = total.Add(item.Subtotal()); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

// QuantityOf returns the quantity for dishID, 0 when absent.
func (c *Cart) QuantityOf(dishID kernel.UUID) int {
	if idx := c.indexOf(dishID); idx >= 0 {
		return c.items[idx].Quantity()
	}
	return 0
}

func (c *Cart) indexOf(dishID kernel.UUID) int {
	for i, item := range c.items {
		if item.Dish().ID().IsEqual(dishID) {
			return i
		}
	}
	return -1
}

func (c *Cart) bind(supplier catalog.Supplier) {
	c.supplier = &supplier
}
