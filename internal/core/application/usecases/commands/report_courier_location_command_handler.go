package commands

import (
	"context"
	"errors"

	"campusdelivery/internal/core/domain/model/courier"
	"campusdelivery/internal/pkg/errs"
)

// ReportCourierLocationCommandHandler overwrites the courier's registry
// record. A courier reporting for itself without a record gets one created;
// an admin reporting for an unknown courier gets NotFound.
type ReportCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewReportCourierLocationCommandHandler(uowFactory CourierUoWFactory) ReportCourierLocationCommandHandler {
	return ReportCourierLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ReportCourierLocationCommandHandler) Handle(
	ctx context.Context,
	cmd ReportCourierLocationCommand,
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
	at := now()

	c, err := repo.GetForUpdate(ctx, cmd.CourierID())
	switch {
	case err == nil:
		if err = c.Report(cmd.Coordinates(), cmd.IsAvailable(), at); err != nil {
			return nil, err
		}
		err = repo.Update(ctx, c)
	case errors.Is(err, errs.ErrObjectNotFound) && cmd.Principal().IsCourier():
		if c, err = courier.NewCourier(cmd.CourierID(), at); err != nil {
			return nil, err
		}
		if err = c.Report(cmd.Coordinates(), cmd.IsAvailable(), at); err != nil {
			return nil, err
		}
		err = repo.Add(ctx, c)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
