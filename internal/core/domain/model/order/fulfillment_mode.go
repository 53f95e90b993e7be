package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// FulfillmentMode says how the customer gets the food.
type FulfillmentMode int

const (
	UnknownMode FulfillmentMode = iota

	// Delivery (ENTREGA) orders carry a delivery address.
	Delivery

	// Pickup (RETIRADA) orders are collected at the supplier.
	Pickup
)

var modeNames = map[FulfillmentMode]string{
	Delivery: "ENTREGA",
	Pickup:   "RETIRADA",
}

// ParseFulfillmentMode accepts ENTREGA or RETIRADA, case-insensitively.
func ParseFulfillmentMode(s string) (FulfillmentMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ENTREGA":
		return Delivery, nil
	case "RETIRADA":
		return Pickup, nil
	default:
		return UnknownMode, errs.NewValueIsInvalidErrorWithCause(
			"fulfillmentMode", fmt.Errorf("%q is not ENTREGA or RETIRADA", s))
	}
}

func (m FulfillmentMode) Validate() error {
	if _, ok := modeNames[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("fulfillmentMode", fmt.Errorf("%d is not a valid mode", m))
	}
	return nil
}

func (m FulfillmentMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}
