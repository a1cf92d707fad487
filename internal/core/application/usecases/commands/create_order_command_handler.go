package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/services"
)

// CreateOrderCommandHandler quotes the route, freezes the fee and stores the
// order in pending status.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	estimator  services.FeeEstimator
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, estimator services.FeeEstimator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
	}
}

// Handle creates the order. Nothing is stored when any step fails.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeOrderCreation(cmd.Principal(), cmd.RequesterID()); err != nil {
		return nil, err
	}

	quote, err := h.estimator.Quote(
		cmd.Pickup().Coordinates(),
		cmd.Delivery().Coordinates(),
		cmd.Item().WeightKg(),
		cmd.DeliveryType(),
	)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.RequesterID(),
		cmd.Pickup(),
		cmd.Delivery(),
		cmd.Item(),
		cmd.DeliveryType(),
		quote,
		now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
