package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/jobs"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Supplier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Dish struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"priceCents"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	Supplier   Supplier `json:"supplier"`
}

type CartItem struct {
	Dish          Dish   `json:"dish"`
	Quantity      int    `json:"quantity"`
	SubtotalCents int64  `json:"subtotalCents"`
	Subtotal      string `json:"subtotal"`
}

type Cart struct {
	Supplier        *Supplier  `json:"supplier,omitempty"`
	Items           []CartItem `json:"items"`
	TotalItemCount  int        `json:"totalItemCount"`
	TotalCents      int64      `json:"totalCents"`
	Total           string     `json:"total"`
	PendingConflict *CartItem  `json:"pendingConflict,omitempty"`
}

// SupplierConflict is the 409 body of an add that hit a cart bound to
// another supplier.
type SupplierConflict struct {
	Code      int      `json:"code"`
	Message   string   `json:"message"`
	Candidate CartItem `json:"candidate"`
	Cart      Cart     `json:"cart"`
}

type AddCartItemRequest struct {
	Dish     Dish `json:"dish"`
	Quantity int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type ResolveConflictRequest struct {
	Confirmed bool `json:"confirmed"`
}

type CheckoutRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerContact string `json:"customerContact"`
	FulfillmentMode string `json:"fulfillmentMode"`
	DeliveryAddress string `json:"deliveryAddress"`
	Notes           string `json:"notes"`
}

type TransitionRequest struct {
	Target string `json:"target"`
}

type OverrideRequest struct {
	Target string `json:"target"`
	Reason string `json:"reason"`
}

type OrderItem struct {
	DishID         string `json:"dishId"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	SubtotalCents  int64  `json:"subtotalCents"`
}

type Action struct {
	Target string `json:"target"`
	Label  string `json:"label"`
}

type Order struct {
	ID              string      `json:"id"`
	Supplier        Supplier    `json:"supplier"`
	CustomerName    string      `json:"customerName"`
	CustomerContact string      `json:"customerContact,omitempty"`
	FulfillmentMode string      `json:"fulfillmentMode"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	TotalCents      int64       `json:"totalCents"`
	Total           string      `json:"total"`
	PlacedAt        time.Time   `json:"placedAt"`
	Actions         []Action    `json:"actions"`
}

type BoardCard struct {
	Order     Order    `json:"order"`
	Overrides []string `json:"overrides"`
}

type BoardColumn struct {
	Lane  string      `json:"lane"`
	Title string      `json:"title"`
	Cards []BoardCard `json:"cards"`
}

type Board struct {
	SupplierID  string        `json:"supplierId"`
	Columns     []BoardColumn `json:"columns"`
	RefreshedAt *time.Time    `json:"refreshedAt,omitempty"`
}

type OrderSummary struct {
	OrderID string `json:"orderId"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

type HistoryEntry struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Kind      string    `json:"kind"`
	Reason    string    `json:"reason,omitempty"`
	ChangedAt time.Time `json:"changedAt"`
}

func supplierFromDomain(s catalog.Supplier) Supplier {
	return Supplier{ID: s.ID().String(), Name: s.Name()}
}

func dishFromDomain(d catalog.Dish) Dish {
	return Dish{
		ID:         d.ID().String(),
		Name:       d.Name(),
		PriceCents: d.Price().Cents(),
		ImageURL:   d.ImageURL(),
		Supplier:   supplierFromDomain(d.Supplier()),
	}
}

func cartItemFromDomain(item cart.Item) CartItem {
	return CartItem{
		Dish:          dishFromDomain(item.Dish()),
		Quantity:      item.Quantity(),
		SubtotalCents: item.Subtotal().Cents(),
		Subtotal:      item.Subtotal().String(),
	}
}

func cartFromDomain(c *cart.Cart) Cart {
	resp := Cart{
		Items:          make([]CartItem, 0, len(c.Items())),
		TotalItemCount: c.TotalItemCount(),
		TotalCents:     c.TotalValue().Cents(),
		Total:          c.TotalValue().String(),
	}
	if s := c.BoundSupplier(); s != nil {
		supplier := supplierFromDomain(*s)
		resp.Supplier = &supplier
	}
	for _, item := range c.Items() {
		resp.Items = append(resp.Items, cartItemFromDomain(item))
	}
	if pending, ok := c.PendingConflict(); ok {
		candidate := cartItemFromDomain(pending)
		resp.PendingConflict = &candidate
	}
	return resp
}

func orderFromDomain(o *order.Order) Order {
	resp := Order{
		ID:              o.ID().String(),
		Supplier:        supplierFromDomain(o.Supplier()),
		CustomerName:    o.CustomerName(),
		CustomerContact: o.CustomerContact(),
		FulfillmentMode: o.FulfillmentMode().String(),
		DeliveryAddress: o.DeliveryAddress(),
		Notes:           o.Notes(),
		Status:          o.Status().String(),
		Items:           make([]OrderItem, 0, len(o.Items())),
		TotalCents:      o.TotalValue().Cents(),
		Total:           o.TotalValue().String(),
		PlacedAt:        o.PlacedAt(),
		Actions:         make([]Action, 0),
	}
	for _, item := range o.Items() {
		resp.Items = append(resp.Items, OrderItem{
			DishID:         item.Dish().ID().String(),
			Name:           item.Dish().Name(),
			ImageURL:       item.Dish().ImageURL(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice().Cents(),
			SubtotalCents:  item.LineSubtotal().Cents(),
		})
	}
	for _, t := range o.LegalTransitions() {
		resp.Actions = append(resp.Actions, Action{Target: t.Target.String(), Label: t.Label})
	}
	return resp
}

var laneNames = map[services.Lane]string{
	services.LaneNew:              "NEW",
	services.LaneInPreparation:    "IN_PREPARATION",
	services.LaneAwaitingCustomer: "AWAITING_CUSTOMER",
	services.LaneFinished:         "FINISHED",
	services.LaneClosed:           "CLOSED",
}

func boardFromDomain(supplierID string, b services.Board) Board {
	resp := Board{SupplierID: supplierID, Columns: make([]BoardColumn, 0, len(b.Columns))}
	for _, column := range b.Columns {
		col := BoardColumn{
			Lane:  laneNames[column.Lane],
			Title: column.Title,
			Cards: make([]BoardCard, 0, len(column.Cards)),
		}
		for _, card := range column.Cards {
			overrides := make([]string, 0, len(card.Overrides))
			for _, s := range card.Overrides {
				overrides = append(overrides, s.String())
			}
			col.Cards = append(col.Cards, BoardCard{Order: orderFromDomain(card.Order), Overrides: overrides})
		}
		resp.Columns = append(resp.Columns, col)
	}
	return resp
}

func snapshotFromDomain(supplierID string, s jobs.BoardSnapshot) Board {
	resp := boardFromDomain(supplierID, s.Board)
	refreshedAt := s.RefreshedAt
	resp.RefreshedAt = &refreshedAt
	return resp
}

func historyFromDomain(entries []queries.GetOrderHistoryQueryResponse) []HistoryEntry {
	resp := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, HistoryEntry{
			From:      e.From.String(),
			To:        e.To.String(),
			Kind:      e.Kind,
			Reason:    e.Reason,
			ChangedAt: e.ChangedAt,
		})
	}
	return resp
}
