package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
	"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
)

type SetCourierAvailabilityCommand struct {
	principal kernel.Principal
	courierID kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

func NewSetCourierAvailabilityCommand(
	principal kernel.Principal,
	courierID kernel.UUID,
	available bool,
) (SetCourierAvailabilityCommand, error) {
	if err := errors.Join(principal.Validate(), courierID.Validate()); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	return SetCourierAvailabilityCommand{
		principal: principal,
		courierID: courierID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

func (c SetCourierAvailabilityCommand) Principal() kernel.Principal {
	return c.principal
}

func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c SetCourierAvailabilityCommand) IsAvailable() bool {
	return c.available
}
