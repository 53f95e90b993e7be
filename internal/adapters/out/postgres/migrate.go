package postgres

import (
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/statuschangerepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the orders, order_items and status_changes tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&statuschangerepo.StatusChangeDTO{},
	)
}
