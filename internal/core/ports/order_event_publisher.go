package ports

import (
	"context"
	"time"

	"campusdelivery/internal/core/domain/model/order"
)

// OrderChanged is emitted after every committed write of an order.
type OrderChanged struct {
	OrderID       string    `json:"order_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CourierID     *string   `json:"courier_id"`
	Version       int64     `json:"version"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewOrderChanged(o *order.Order, at time.Time) OrderChanged {
	event := OrderChanged{
		OrderID:       o.ID().String(),
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		Version:       o.Version(),
		OccurredAt:    at,
	}
	if id := o.CourierID(); id != nil {
		s := id.String()
		event.CourierID = &s
	}
	return event
}

type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...OrderChanged) error
}
