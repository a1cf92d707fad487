package queries

import (
	"errors"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrListAvailableCouriersQueryIsNotConstructed = errors.New(
	"ListAvailableCouriersQuery must be created via NewListAvailableCouriersQuery constructor",
)

type ListAvailableCouriersQuery struct {
	guard guard.ConstructorGuard
}

func NewListAvailableCouriersQuery() ListAvailableCouriersQuery {
	return ListAvailableCouriersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableCouriersQueryIsNotConstructed)
}

// CourierView is the registry record of one courier.
type CourierView struct {
	ID          kernel.UUID
	Location    kernel.Coordinates
	IsAvailable bool
	LastUpdated time.Time
}
