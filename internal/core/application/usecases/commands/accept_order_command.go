package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand lets a courier claim a specific searching order.
type AcceptOrderCommand struct {
	principal kernel.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(principal kernel.Principal, orderID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(principal.Validate(), orderID.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}
	if !principal.IsCourier() {
		return AcceptOrderCommand{}, errs.NewAccessDeniedError("accept orders", principal.ID())
	}

	return AcceptOrderCommand{
		principal: principal,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) Principal() kernel.Principal {
	return c.principal
}

func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
