package services

import (
	"marketplace/internal/core/domain/model/order"
)

// Lane is a display bucket of the status board.
type Lane int

const (
	LaneNew Lane = iota
	LaneInPreparation
	LaneAwaitingCustomer
	LaneFinished
	LaneClosed
)

var laneTitles = map[Lane]string{
	LaneNew:              "Novos",
	LaneInPreparation:    "Em Preparo",
	LaneAwaitingCustomer: "Aguardando Cliente",
	LaneFinished:         "Finalizados",
	LaneClosed:           "Recusados/Cancelados",
}

// AllLanes returns the lanes in display order.
func AllLanes() []Lane {
	return []Lane{LaneNew, LaneInPreparation, LaneAwaitingCustomer, LaneFinished, LaneClosed}
}

// Title is the lane heading shown to operators.
func (l Lane) Title() string {
	return laneTitles[l]
}

// LaneOf maps an order status to its lane. RECUSADO and CANCELADO_FORNECEDOR
// share a lane.
func LaneOf(s order.Status) (Lane, bool) {
	switch s {
	case order.New:
		return LaneNew, true
	case order.InPreparation:
		return LaneInPreparation, true
	case order.AwaitingCustomer:
		return LaneAwaitingCustomer, true
	case order.Finished:
		return LaneFinished, true
	case order.Refused, order.CancelledBySupplier:
		return LaneClosed, true
	default:
		return 0, false
	}
}

// Card is one order on the board together with what the operator may do with it.
type Card struct {
	Order *order.Order
	// Actions are the guided transitions for the order's status and mode.
	Actions []order.Transition
	// Overrides lists every status the order can be forced into.
	Overrides []order.Status
}

type Column struct {
	Lane  Lane
	Title string
	Cards []Card
}

// Board is the ordered set of lanes. Empty lanes are kept.
type Board struct {
	Columns []Column
}

// Column returns the column for lane.
func (b Board) Column(lane Lane) Column {
	for _, c := range b.Columns {
		if c.Lane == lane {
			return c
		}
	}
	return Column{Lane: lane, Title: lane.Title()}
}

// StatusBoard groups orders into lanes. It holds no state and is safe for
// concurrent use.
//
// Example usage:
//
//	board := services.NewStatusBoard().Build(orders)
//	for _, column := range board.Columns {
//	    fmt.Println(column.Title, len(column.Cards))
//	}
type StatusBoard struct{}

func NewStatusBoard() StatusBoard {
	return StatusBoard{}
}

// Partition is a stable partition of orders into lanes. Every lane is present
// in the result, possibly with an empty slice. Orders that were not built
// through the order constructors are skipped.
func (StatusBoard) Partition(orders []*order.Order) map[Lane][]*order.Order {
	lanes := make(map[Lane][]*order.Order, len(laneTitles))
	for _, lane := range AllLanes() {
		lanes[lane] = []*order.Order{}
	}

	for _, o := range orders {
		if o.Validate() != nil {
			continue
		}
		lane, ok := LaneOf(o.Status())
		if !ok {
			continue
		}
		lanes[lane] = append(lanes[lane], o)
	}

	return lanes
}

// Build partitions orders and decorates each one with its guided actions
// and override targets.
func (b StatusBoard) Build(orders []*order.Order) Board {
	lanes := b.Partition(orders)

	board := Board{Columns: make([]Column, 0, len(lanes))}
	for _, lane := range AllLanes() {
		column := Column{
			Lane:  lane,
			Title: lane.Title(),
			Cards: make([]Card, 0, len(lanes[lane])),
		}
		for _, o := range lanes[lane] {
			column.Cards = append(column.Cards, Card{
				Order:     o,
				Actions:   o.LegalTransitions(),
				Overrides: overrideTargets(o.Status()),
			})
		}
		board.Columns = append(board.Columns, column)
	}

	return board
}

func overrideTargets(current order.Status) []order.Status {
	all := order.AllStatuses()
	targets := make([]order.Status, 0, len(all)-1)
	for _, s := range all {
		if s != current {
			targets = append(targets, s)
		}
	}
	return targets
}
