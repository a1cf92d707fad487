package payment

import (
	"errors"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errors.New("payment entry must be created via NewEntry")

// Entry is one row of the payment ledger. Entries are never updated.
type Entry struct {
	id            kernel.UUID
	orderID       kernel.UUID
	transactionID string
	amount        int64
	status        order.PaymentStatus
	paymentTime   *time.Time
	createdAt     time.Time
	guard         guard.ConstructorGuard
}

func NewEntry(
	orderID kernel.UUID,
	transactionID string,
	amount int64,
	status order.PaymentStatus,
	paymentTime *time.Time,
	now time.Time,
) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), orderID, transactionID, amount, status, paymentTime, now)
}

func RestoreEntry(
	id, orderID kernel.UUID,
	transactionID string,
	amount int64,
	status order.PaymentStatus,
	paymentTime *time.Time,
	createdAt time.Time,
) (*Entry, error) {
	var err error
	if e := id.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("payment_id", e))
	}
	if e := orderID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("order_id", e))
	}
	if transactionID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("transaction_id"))
	}
	if amount <= 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("amount", amount, 1, "unbounded"))
	}
	if e := status.Validate(); e != nil {
		err = errors.Join(err, e)
	}
	if err != nil {
		return nil, err
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		transactionID: transactionID,
		amount:        amount,
		status:        status,
		paymentTime:   paymentTime,
		createdAt:     createdAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

func (e *Entry) TransactionID() string {
	return e.transactionID
}

func (e *Entry) Amount() int64 {
	return e.amount
}

func (e *Entry) Status() order.PaymentStatus {
	return e.status
}

func (e *Entry) PaymentTime() *time.Time {
	return e.paymentTime
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}
