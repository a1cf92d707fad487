package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrMatchOrderCommandIsNotConstructed = errors.New(
	"MatchOrderCommand must be created via NewMatchOrderCommand constructor",
)

// MatchOrderCommand asks the matching engine to assign an available courier to
// an order that is searching for one.
//
// Example:
//
//	cmd, _ := NewMatchOrderCommand(kernel.SystemPrincipal(), orderID)
//	matched, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoCouriersAvailable) {
//	    // order stays in searching_courier, retried later
//	}
type MatchOrderCommand struct {
	principal kernel.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewMatchOrderCommand(principal kernel.Principal, orderID kernel.UUID) (MatchOrderCommand, error) {
	if err := errors.Join(principal.Validate(), orderID.Validate()); err != nil {
		return MatchOrderCommand{}, err
	}

	return MatchOrderCommand{
		principal: principal,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrMatchOrderCommandIsNotConstructed)
}

func (c MatchOrderCommand) Principal() kernel.Principal {
	return c.principal
}

func (c MatchOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
