package order

import "marketplace/internal/pkg/errs"

// Transition is a guided status change offered to the supplier as a labeled
// action. Two modes may reach the same target under different labels.
type Transition struct {
	Target Status
	Label  string
}

const cancelLabel = "Cancelar Pedido"

type transitionKey struct {
	from Status
	mode FulfillmentMode
}

// transitions is the complete guided transition table. Missing keys have no
// outgoing guided transitions.
var transitions = map[transitionKey][]Transition{
	{New, Delivery}: {
		{Target: InPreparation, Label: "Aceitar (Entrega)"},
		{Target: Refused, Label: "Recusar Pedido"},
	},
	{New, Pickup}: {
		{Target: InPreparation, Label: "Aceitar e Preparar (Retirada)"},
		{Target: Refused, Label: "Recusar Pedido"},
	},
	{InPreparation, Delivery}: {
		{Target: Finished, Label: "Finalizar (Entregue)"},
		{Target: CancelledBySupplier, Label: cancelLabel},
	},
	{InPreparation, Pickup}: {
		{Target: AwaitingCustomer, Label: "Pronto para Retirada"},
		{Target: CancelledBySupplier, Label: cancelLabel},
	},
	{AwaitingCustomer, Pickup}: {
		{Target: Finished, Label: "Cliente Retirou"},
		{Target: CancelledBySupplier, Label: cancelLabel},
	},
}

// LegalTransitions returns, in display order, the guided transitions available
// from status for an order fulfilled in mode. The result is empty for terminal
// statuses and for combinations the table does not list. The returned slice is
// a copy and may be modified.
func LegalTransitions(status Status, mode FulfillmentMode) []Transition {
	legal := transitions[transitionKey{from: status, mode: mode}]
	out := make([]Transition, len(legal))
	copy(out, legal)
	return out
}

// ValidateTransition returns an *errs.InvalidTransitionError unless from -> to
// is listed for mode.
func ValidateTransition(from, to Status, mode FulfillmentMode) error {
	for _, t := range transitions[transitionKey{from: from, mode: mode}] {
		if t.Target == to {
			return nil
		}
	}
	return errs.NewInvalidTransitionError(from.String(), to.String(), mode.String())
}
