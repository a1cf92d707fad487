package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new delivery order.
// The fee is not part of the command; it is computed by the handler and
// frozen on the order.
//
// Example:
//
//	pickup, _ := order.NewAddress("pickup_address", "Kantin Teknik", &coords)
//	delivery, _ := order.NewAddress("delivery_address", "Asrama Blok C", nil)
//	item, _ := order.NewItem("2x nasi goreng", 2)
//	cmd, err := NewCreateOrderCommand(principal, principal.ID(), pickup, delivery, item, order.Standard)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	principal    kernel.Principal
	requesterID  kernel.UUID
	pickup       order.Address
	delivery     order.Address
	item         order.Item
	deliveryType order.DeliveryType

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	principal kernel.Principal,
	requesterID kernel.UUID,
	pickup order.Address,
	delivery order.Address,
	item order.Item,
	deliveryType order.DeliveryType,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setRequesterID(requesterID),
		cmd.setAddresses(pickup, delivery),
		cmd.setItem(item),
		cmd.setDeliveryType(deliveryType),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Principal() kernel.Principal {
	return c.principal
}

func (c CreateOrderCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

func (c CreateOrderCommand) Pickup() order.Address {
	return c.pickup
}

func (c CreateOrderCommand) Delivery() order.Address {
	return c.delivery
}

func (c CreateOrderCommand) Item() order.Item {
	return c.item
}

func (c CreateOrderCommand) DeliveryType() order.DeliveryType {
	return c.deliveryType
}

func (c *CreateOrderCommand) setPrincipal(p kernel.Principal) error {
	if err := p.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("principal", err)
	}
	c.principal = p
	return nil
}

func (c *CreateOrderCommand) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requester_id", err)
	}
	c.requesterID = id
	return nil
}

func (c *CreateOrderCommand) setAddresses(pickup, delivery order.Address) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}
	c.pickup = pickup
	c.delivery = delivery
	return nil
}

func (c *CreateOrderCommand) setItem(item order.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	c.item = item
	return nil
}

func (c *CreateOrderCommand) setDeliveryType(t order.DeliveryType) error {
	if _, err := order.ParseDeliveryType(t.String()); err != nil {
		return err
	}
	c.deliveryType = t
	return nil
}
