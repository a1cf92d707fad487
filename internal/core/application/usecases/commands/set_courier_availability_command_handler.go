package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/courier"
)

// SetCourierAvailabilityCommandHandler toggles availability without touching
// the position. It fails with NotFound when the courier has no record.
type SetCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewSetCourierAvailabilityCommandHandler(uowFactory CourierUoWFactory) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h SetCourierAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd SetCourierAvailabilityCommand,
) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeCourierSelf(cmd.Principal(), cmd.CourierID()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()
	c, err := repo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}

	c.SetAvailability(cmd.IsAvailable(), now())
	if err = repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
