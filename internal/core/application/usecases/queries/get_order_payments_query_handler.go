package queries

import (
	"context"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderPaymentsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderPaymentsQueryHandler(db *gorm.DB) GetOrderPaymentsQueryHandler {
	return GetOrderPaymentsQueryHandler{db: db}
}

// Handle reads the ledger newest first. The latest status is always the
// order's payment status: expiry and retries change it without a ledger row.
func (h GetOrderPaymentsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderPaymentsQuery,
) (OrderPaymentsView, error) {
	if err := query.Validate(); err != nil {
		return OrderPaymentsView{}, err
	}

	view, err := loadOrderView(ctx, h.db, query.OrderID().Google())
	if err != nil {
		return OrderPaymentsView{}, err
	}
	if !view.VisibleTo(query.Principal()) {
		return OrderPaymentsView{}, errs.NewAccessDeniedError(
			"read payments of order "+view.ID.String(), query.Principal().ID(),
		)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, transaction_id, amount, status, payment_time, created_at
		FROM payments
		WHERE order_id = ?
		ORDER BY created_at DESC, id DESC
	`, query.OrderID().Google()).Rows()
	if err != nil {
		return OrderPaymentsView{}, err
	}
	defer rows.Close()

	result := OrderPaymentsView{
		OrderID:      view.ID,
		LatestStatus: view.PaymentStatus,
		Entries:      make([]PaymentEntryView, 0),
	}
	for rows.Next() {
		var (
			entry  PaymentEntryView
			id     uuid.UUID
			status string
		)
		err = rows.Scan(&id, &entry.TransactionID, &entry.Amount, &status, &entry.PaymentTime, &entry.CreatedAt)
		if err != nil {
			return OrderPaymentsView{}, err
		}
		if entry.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return OrderPaymentsView{}, err
		}
		if entry.Status, err = order.ParsePaymentStatus(status); err != nil {
			return OrderPaymentsView{}, err
		}
		result.Entries = append(result.Entries, entry)
	}

	if err = rows.Err(); err != nil {
		return OrderPaymentsView{}, err
	}

	return result, nil
}
