package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of an order. The zero value Unknown is invalid.
type Status int

const (
	Unknown Status = iota

	// New orders wait for the supplier to accept or refuse them.
	New

	// InPreparation orders were accepted and are being cooked.
	InPreparation

	// AwaitingCustomer pickup orders are ready at the counter.
	AwaitingCustomer

	// Finished orders were delivered or picked up.
	Finished

	// Refused orders were declined by the supplier before preparation.
	Refused

	// CancelledBySupplier orders were dropped by the supplier after acceptance.
	CancelledBySupplier
)

var statusNames = map[Status]string{
	New:                 "NOVO",
	InPreparation:       "EM_PREPARO",
	AwaitingCustomer:    "AGUARDANDO_CLIENTE",
	Finished:            "FINALIZADO",
	Refused:             "RECUSADO",
	CancelledBySupplier: "CANCELADO_FORNECEDOR",
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{New, InPreparation, AwaitingCustomer, Finished, Refused, CancelledBySupplier}
}

// ParseStatus accepts the wire names (NOVO, EM_PREPARO, ...), case-insensitively.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, statusName := range statusNames {
		if statusName == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no guided transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Finished || s == Refused || s == CancelledBySupplier
}
