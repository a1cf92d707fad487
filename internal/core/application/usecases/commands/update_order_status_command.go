package commands

import (
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand moves an order along the courier path
// (picked_up, on_delivery, delivered) or cancels it. When an expected version
// is given the update is rejected if the order has changed since.
type UpdateOrderStatusCommand struct {
	principal       kernel.Principal
	orderID         kernel.UUID
	status          order.Status
	notes           string
	expectedVersion *int64

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(
	principal kernel.Principal,
	orderID kernel.UUID,
	status order.Status,
	notes string,
	expectedVersion *int64,
) (UpdateOrderStatusCommand, error) {
	var statusErr error
	if status != order.Cancelled && !order.IsCourierStep(status) {
		statusErr = errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s cannot be set directly", status))
	}

	var versionErr error
	if expectedVersion != nil && *expectedVersion < 1 {
		versionErr = errs.NewValueIsOutOfRangeError("version", *expectedVersion, 1, "unbounded")
	}

	if err := errors.Join(principal.Validate(), orderID.Validate(), status.Validate(), statusErr, versionErr); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		principal:       principal,
		orderID:         orderID,
		status:          status,
		notes:           notes,
		expectedVersion: expectedVersion,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) Principal() kernel.Principal {
	return c.principal
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c UpdateOrderStatusCommand) Notes() string {
	return c.notes
}

func (c UpdateOrderStatusCommand) ExpectedVersion() (int64, bool) {
	if c.expectedVersion == nil {
		return 0, false
	}
	return *c.expectedVersion, true
}
