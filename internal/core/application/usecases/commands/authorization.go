package commands

import (
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
)

// now is the clock used by handlers.
func now() time.Time {
	return time.Now().UTC()
}

func authorizeOrderCreation(p kernel.Principal, requesterID kernel.UUID) error {
	if p.IsAdmin() {
		return nil
	}
	if p.IsRequester() && p.ID().IsEqual(requesterID) {
		return nil
	}
	return errs.NewAccessDeniedError("create orders for "+requesterID.String(), p.ID())
}

// authorizeRequesterAction covers actions only the owner of an order (or an
// admin) may take: paying for it, cancelling it, asking for a match.
func authorizeRequesterAction(p kernel.Principal, o *order.Order, action string) error {
	if p.IsAdmin() || o.IsRequestedBy(p.ID()) {
		return nil
	}
	return errs.NewAccessDeniedError(action+" order "+o.ID().String(), p.ID())
}

func authorizeCourierStep(p kernel.Principal, o *order.Order, to order.Status) error {
	if p.IsAdmin() {
		return nil
	}
	if p.IsCourier() && o.IsAssignedTo(p.ID()) {
		return nil
	}
	return errs.NewAccessDeniedError("move order "+o.ID().String()+" to "+to.String(), p.ID())
}

func authorizeCourierSelf(p kernel.Principal, courierID kernel.UUID) error {
	if p.IsAdmin() {
		return nil
	}
	if p.IsCourier() && p.ID().IsEqual(courierID) {
		return nil
	}
	return errs.NewAccessDeniedError("update courier "+courierID.String(), p.ID())
}
