package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads the status_changes table directly.
// Entries come back oldest first. Store failures are returned as
// *errs.PersistenceUnavailableError.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			kind,
			reason,
			changed_at
		FROM status_changes
		WHERE order_id = ?
		ORDER BY changed_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, errs.NewPersistenceUnavailableError("load order history", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry    GetOrderHistoryQueryResponse
			from, to string
		)

		if err = rows.Scan(&from, &to, &entry.Kind, &entry.Reason, &entry.ChangedAt); err != nil {
			return nil, errs.NewPersistenceUnavailableError("read order history", err)
		}

		if entry.From, err = order.ParseStatus(from); err != nil {
			return nil, err
		}
		if entry.To, err = order.ParseStatus(to); err != nil {
			return nil, err
		}
		entry.ChangedAt = entry.ChangedAt.In(time.UTC)

		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceUnavailableError("read order history", err)
	}

	return history, nil
}
