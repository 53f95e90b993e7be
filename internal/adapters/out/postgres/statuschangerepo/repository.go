// Package statuschangerepo appends status changes to the status_changes
// audit table. Rows are never updated or deleted.
package statuschangerepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusChangeDTO struct {
	ID         uint      `gorm:"primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null"`
	FromStatus string    `gorm:"size:32;not null"`
	ToStatus   string    `gorm:"size:32;not null"`
	Kind       string    `gorm:"size:16;not null"`
	Reason     string
	ChangedAt  time.Time `gorm:"not null"`
}

func (StatusChangeDTO) TableName() string {
	return "status_changes"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type GormStatusChangeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormStatusChangeRepository(db *gorm.DB, tracker aggregateTracker) *GormStatusChangeRepository {
	return &GormStatusChangeRepository{db: db, tracker: tracker}
}

// Add stores change and registers it with the tracker so it can be published
// once the surrounding transaction commits.
func (r *GormStatusChangeRepository) Add(ctx context.Context, change order.StatusChange) error {
	if err := change.Validate(); err != nil {
		return err
	}

	dto := StatusChangeDTO{
		OrderID:    change.OrderID().Bytes(),
		SupplierID: change.SupplierID().Bytes(),
		FromStatus: change.From().String(),
		ToStatus:   change.To().String(),
		Kind:       change.Kind().String(),
		Reason:     change.Reason(),
		ChangedAt:  change.ChangedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(change.OrderID(), change)
	return nil
}
