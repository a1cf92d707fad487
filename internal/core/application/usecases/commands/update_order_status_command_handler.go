package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler applies courier progress and cancellations.
// Cancelling a matched order releases its courier in the same transaction.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
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

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if version, ok := cmd.ExpectedVersion(); ok {
		if err = o.ExpectVersion(version); err != nil {
			return nil, err
		}
	}

	if cmd.Status() == order.Cancelled {
		err = h.cancel(ctx, uow, o, cmd)
	} else {
		err = h.advance(o, cmd)
	}
	if err != nil {
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

func (h UpdateOrderStatusCommandHandler) advance(o *order.Order, cmd UpdateOrderStatusCommand) error {
	if err := authorizeCourierStep(cmd.Principal(), o, cmd.Status()); err != nil {
		return err
	}
	return o.Advance(cmd.Status(), cmd.Notes(), now())
}

func (h UpdateOrderStatusCommandHandler) cancel(ctx context.Context, uow UoW, o *order.Order, cmd UpdateOrderStatusCommand) error {
	if err := authorizeRequesterAction(cmd.Principal(), o, "cancel"); err != nil {
		return err
	}

	at := now()
	released, err := o.Cancel(cmd.Notes(), at)
	if err != nil {
		return err
	}
	if released == nil {
		return nil
	}

	courierRepo := uow.CourierRepository()
	c, err := courierRepo.GetForUpdate(ctx, *released)
	if err != nil {
		return err
	}
	c.Release(at)
	return courierRepo.Update(ctx, c)
}
