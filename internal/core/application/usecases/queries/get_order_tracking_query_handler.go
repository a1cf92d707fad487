package queries

import (
	"context"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler returns the status log of an order, oldest
// entry first.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) ([]TrackingEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	view, err := loadOrderView(ctx, h.db, query.OrderID().Google())
	if err != nil {
		return nil, err
	}
	if !view.VisibleTo(query.Principal()) {
		return nil, errs.NewAccessDeniedError("read tracking of order "+view.ID.String(), query.Principal().ID())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, notes, created_at
		FROM order_tracking
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().Google()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]TrackingEntryView, 0)
	for rows.Next() {
		var (
			entry  TrackingEntryView
			status string
			notes  *string
		)
		if err = rows.Scan(&status, &notes, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if entry.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if notes != nil {
			entry.Notes = *notes
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
