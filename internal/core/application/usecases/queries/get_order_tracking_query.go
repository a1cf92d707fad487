package queries

import (
	"errors"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

type GetOrderTrackingQuery struct {
	principal kernel.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(principal kernel.Principal, orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := errors.Join(principal.Validate(), orderID.Validate()); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	return GetOrderTrackingQuery{principal: principal, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) Principal() kernel.Principal {
	return q.principal
}

func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

type TrackingEntryView struct {
	Status    order.Status
	Notes     string
	CreatedAt time.Time
}
