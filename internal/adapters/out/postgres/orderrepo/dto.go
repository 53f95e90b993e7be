// Package orderrepo persists order aggregates with GORM. An order is stored as
// one orders row plus its lines in order_items; dish and supplier details are
// kept as they were at checkout.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID      uuid.UUID `gorm:"type:uuid;index:idx_orders_supplier_placed,priority:1"`
	SupplierName    string    `gorm:"not null"`
	CustomerName    string    `gorm:"not null"`
	CustomerContact string
	Mode            string `gorm:"size:16;not null"`
	DeliveryAddress string
	Notes           string
	Status          string    `gorm:"size:32;not null;index"`
	TotalCents      int64     `gorm:"not null"`
	PlacedAt        time.Time `gorm:"not null;index:idx_orders_supplier_placed,priority:2"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps the lines in the order the
// customer added them.
type OrderItemDTO struct {
	ID             uint      `gorm:"primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Position       int       `gorm:"not null"`
	DishID         uuid.UUID `gorm:"type:uuid;not null"`
	DishName       string    `gorm:"not null"`
	DishImageURL   string
	UnitPriceCents int64 `gorm:"not null"`
	Quantity       int   `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:        o.ID().Bytes(),
			Position:       i,
			DishID:         item.Dish().ID().Bytes(),
			DishName:       item.Dish().Name(),
			DishImageURL:   item.Dish().ImageURL(),
			UnitPriceCents: item.UnitPrice().Cents(),
			Quantity:       item.Quantity(),
		})
	}

	return OrderDTO{
		ID:              o.ID().Bytes(),
		SupplierID:      o.Supplier().ID().Bytes(),
		SupplierName:    o.Supplier().Name(),
		CustomerName:    o.CustomerName(),
		CustomerContact: o.CustomerContact(),
		Mode:            o.FulfillmentMode().String(),
		DeliveryAddress: o.DeliveryAddress(),
		Notes:           o.Notes(),
		Status:          o.Status().String(),
		TotalCents:      o.TotalValue().Cents(),
		PlacedAt:        o.PlacedAt(),
		Items:           items,
	}
}

// toDomain rebuilds the aggregate through RestoreOrder. Items are expected
// sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}
	supplier, err := catalog.NewSupplier(supplierID, dto.SupplierName)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO, supplier)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	mode, err := order.ParseFulfillmentMode(dto.Mode)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, supplier, items, order.Placement{
		CustomerName:    dto.CustomerName,
		CustomerContact: dto.CustomerContact,
		Mode:            mode,
		DeliveryAddress: dto.DeliveryAddress,
		Notes:           dto.Notes,
	}, status, total, dto.PlacedAt.UTC())
}

func itemToDomain(dto OrderItemDTO, supplier catalog.Supplier) (order.Item, error) {
	dishID, err := kernel.UUIDFromBytes(dto.DishID[:])
	if err != nil {
		return order.Item{}, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPriceCents)
	if err != nil {
		return order.Item{}, err
	}
	dish, err := catalog.NewDish(dishID, dto.DishName, unitPrice, dto.DishImageURL, supplier)
	if err != nil {
		return order.Item{}, err
	}
	return order.RestoreItem(dish, dto.Quantity, unitPrice)
}
