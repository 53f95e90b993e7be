package order

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrStatusChangeIsNotConstructed = errors.New("StatusChange must be created via NewStatusChange constructor")

// ChangeKind tells a guided transition apart from a manual override.
type ChangeKind int

const (
	UnknownKind ChangeKind = iota
	Guided
	Override
)

func (k ChangeKind) String() string {
	switch k {
	case Guided:
		return "GUIDED"
	case Override:
		return "OVERRIDE"
	default:
		return "UNKNOWN"
	}
}

// StatusChange records one status write applied to an order. It is the row
// kept in the audit trail and the payload of the order-status-changed event.
type StatusChange struct {
	orderID    kernel.UUID
	supplierID kernel.UUID
	mode       FulfillmentMode
	from       Status
	to         Status
	kind       ChangeKind
	reason     string
	changedAt  time.Time

	guard guard.ConstructorGuard
}

// NewStatusChange captures the move of o from the status it had before the
// change to its current status.
func NewStatusChange(o *Order, from Status, kind ChangeKind, reason string, changedAt time.Time) (StatusChange, error) {
	if err := o.Validate(); err != nil {
		return StatusChange{}, err
	}
	if err := from.Validate(); err != nil {
		return StatusChange{}, err
	}
	if kind != Guided && kind != Override {
		return StatusChange{}, errs.NewValueIsInvalidError("kind")
	}
	if changedAt.IsZero() {
		return StatusChange{}, errs.NewValueIsRequiredError("changedAt")
	}

	return StatusChange{
		orderID:    o.ID(),
		supplierID: o.Supplier().ID(),
		mode:       o.FulfillmentMode(),
		from:       from,
		to:         o.Status(),
		kind:       kind,
		reason:     strings.TrimSpace(reason),
		changedAt:  changedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c StatusChange) Validate() error {
	return c.guard.Validate(ErrStatusChangeIsNotConstructed)
}

func (c StatusChange) OrderID() kernel.UUID { return c.orderID }
func (c StatusChange) SupplierID() kernel.UUID { return c.supplierID }
func (c StatusChange) Mode() FulfillmentMode { return c.mode }
func (c StatusChange) From() Status { return c.from }
func (c StatusChange) To() Status { return c.to }
func (c StatusChange) Kind() ChangeKind { return c.kind }
func (c StatusChange) Reason() string { return c.reason }
func (c StatusChange) ChangedAt() time.Time { return c.changedAt }
