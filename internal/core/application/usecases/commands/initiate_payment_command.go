package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/payment"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrInitiatePaymentCommandIsNotConstructed = errors.New(
	"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
)

// InitiatePaymentCommand asks the payment gateway for a checkout session for
// an order. The amount must equal the fee frozen on the order.
type InitiatePaymentCommand struct {
	principal kernel.Principal
	orderID   kernel.UUID
	amount    int64
	customer  payment.Customer

	guard guard.ConstructorGuard
}

func NewInitiatePaymentCommand(
	principal kernel.Principal,
	orderID kernel.UUID,
	amount int64,
	customer payment.Customer,
) (InitiatePaymentCommand, error) {
	cmd := InitiatePaymentCommand{
		principal: principal,
		orderID:   orderID,
		amount:    amount,
		customer:  customer,
		guard:     guard.NewConstructorGuard(),
	}

	var amountErr error
	if amount <= 0 {
		amountErr = errs.NewValueIsOutOfRangeError("amount", amount, 1, "unbounded")
	}

	if err := errors.Join(
		principal.Validate(),
		orderID.Validate(),
		amountErr,
		customer.Validate(),
	); err != nil {
		return InitiatePaymentCommand{}, err
	}

	return cmd, nil
}

func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

func (c InitiatePaymentCommand) Principal() kernel.Principal {
	return c.principal
}

func (c InitiatePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c InitiatePaymentCommand) Amount() int64 {
	return c.amount
}

func (c InitiatePaymentCommand) Customer() payment.Customer {
	return c.customer
}
