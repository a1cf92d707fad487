package commands

import (
	"context"
	"errors"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/pkg/metrics"
)

// MatchOrderCommandHandler assigns a courier to a searching order. The order
// write and the courier reservation share one transaction; candidate courier
// rows stay locked until commit so concurrent matchers never pick the same
// courier.
type MatchOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
}

func NewMatchOrderCommandHandler(uowFactory UoWFactory, dispatcher services.OrderDispatcher) MatchOrderCommandHandler {
	return MatchOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle returns services.ErrNoCouriersAvailable when nobody can take the
// order; neither the order nor any courier is changed in that case.
func (h MatchOrderCommandHandler) Handle(ctx context.Context, cmd MatchOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	matched, err := h.match(ctx, cmd)
	switch {
	case err == nil:
		metrics.MatchAttemptsTotal.WithLabelValues("matched").Inc()
	case errors.Is(err, services.ErrNoCouriersAvailable):
		metrics.MatchAttemptsTotal.WithLabelValues("no_couriers").Inc()
	default:
		metrics.MatchAttemptsTotal.WithLabelValues("failed").Inc()
	}
	return matched, err
}

func (h MatchOrderCommandHandler) match(ctx context.Context, cmd MatchOrderCommand) (*order.Order, error) {
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
	if err = authorizeRequesterAction(cmd.Principal(), o, "match"); err != nil {
		return nil, err
	}
	if err = o.Status().ValidateMatch(); err != nil {
		return nil, err
	}

	couriers, err := courierRepo.GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}

	assigned, err := h.dispatcher.Dispatch(o, couriers, now())
	if err != nil {
		return nil, err
	}

	if err = courierRepo.Update(ctx, assigned); err != nil {
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
