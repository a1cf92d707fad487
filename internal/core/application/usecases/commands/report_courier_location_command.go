package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrReportCourierLocationCommandIsNotConstructed = errors.New(
	"ReportCourierLocationCommand must be created via NewReportCourierLocationCommand constructor",
)

// ReportCourierLocationCommand is a courier's periodic position and
// availability report.
type ReportCourierLocationCommand struct {
	principal   kernel.Principal
	courierID   kernel.UUID
	coordinates kernel.Coordinates
	available   bool

	guard guard.ConstructorGuard
}

func NewReportCourierLocationCommand(
	principal kernel.Principal,
	courierID kernel.UUID,
	coordinates kernel.Coordinates,
	available bool,
) (ReportCourierLocationCommand, error) {
	if err := errors.Join(principal.Validate(), courierID.Validate(), coordinates.Validate()); err != nil {
		return ReportCourierLocationCommand{}, err
	}

	return ReportCourierLocationCommand{
		principal:   principal,
		courierID:   courierID,
		coordinates: coordinates,
		available:   available,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReportCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportCourierLocationCommandIsNotConstructed)
}

func (c ReportCourierLocationCommand) Principal() kernel.Principal {
	return c.principal
}

func (c ReportCourierLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c ReportCourierLocationCommand) Coordinates() kernel.Coordinates {
	return c.coordinates
}

func (c ReportCourierLocationCommand) IsAvailable() bool {
	return c.available
}
