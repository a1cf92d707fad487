package queries

import (
	"errors"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/guard"
)

var ErrGetOrderPaymentsQueryIsNotConstructed = errors.New(
	"GetOrderPaymentsQuery must be created via NewGetOrderPaymentsQuery constructor",
)

type GetOrderPaymentsQuery struct {
	principal kernel.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderPaymentsQuery(principal kernel.Principal, orderID kernel.UUID) (GetOrderPaymentsQuery, error) {
	if err := errors.Join(principal.Validate(), orderID.Validate()); err != nil {
		return GetOrderPaymentsQuery{}, err
	}
	return GetOrderPaymentsQuery{principal: principal, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderPaymentsQueryIsNotConstructed)
}

func (q GetOrderPaymentsQuery) Principal() kernel.Principal {
	return q.principal
}

func (q GetOrderPaymentsQuery) OrderID() kernel.UUID {
	return q.orderID
}

type PaymentEntryView struct {
	ID            kernel.UUID
	TransactionID string
	Amount        int64
	Status        order.PaymentStatus
	PaymentTime   *time.Time
	CreatedAt     time.Time
}

// OrderPaymentsView is the payment ledger of an order, newest entry first.
type OrderPaymentsView struct {
	OrderID      kernel.UUID
	LatestStatus order.PaymentStatus
	Entries      []PaymentEntryView
}
