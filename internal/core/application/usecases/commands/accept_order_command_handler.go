package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/courier"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
)

// AcceptOrderCommandHandler is matching with the courier fixed by the caller.
// The courier row is locked for the transaction.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewAcceptOrderCommandHandler(uowFactory UoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = o.Status().ValidateMatch(); err != nil {
		return nil, err
	}

	c, err := courierRepo.GetForUpdate(ctx, cmd.Principal().ID())
	if err != nil {
		return nil, err
	}

	at := now()
	if err = c.Reserve(at); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("courier", courier.ErrCourierIsUnavailable)
	}
	if err = o.AssignCourier(c.ID(), at); err != nil {
		return nil, err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
