package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)
	filter := query.Filter()
	if filter.RequesterID != nil {
		conditions = append(conditions, "requester_id = ?")
		args = append(args, filter.RequesterID.Google())
	}
	if filter.CourierID != nil {
		conditions = append(conditions, "courier_id = ?")
		args = append(args, filter.CourierID.Google())
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status.String())
	}

	sql := `SELECT ` + orderColumns + ` FROM orders`
	if len(conditions) > 0 {
		sql += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	sql += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
