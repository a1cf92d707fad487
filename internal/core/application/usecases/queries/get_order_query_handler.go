package queries

import (
	"context"

	"campusdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order. Orders the caller may not see
// are reported as access denied.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	view, err := loadOrderView(ctx, h.db, query.OrderID().Google())
	if err != nil {
		return OrderView{}, err
	}
	if !view.VisibleTo(query.Principal()) {
		return OrderView{}, errs.NewAccessDeniedError("read order "+view.ID.String(), query.Principal().ID())
	}

	return view, nil
}

func loadOrderView(ctx context.Context, db *gorm.DB, id any) (OrderView, error) {
	rows, err := db.WithContext(ctx).Raw(`SELECT `+orderColumns+`
		FROM orders
		WHERE id = ?`, id).Rows()
	if err != nil {
		return OrderView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderView{}, err
		}
		return OrderView{}, errs.NewObjectNotFoundError("order", id)
	}

	view, err := scanOrderView(rows)
	if err != nil {
		return OrderView{}, err
	}
	return view, rows.Err()
}
