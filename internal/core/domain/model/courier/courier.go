package courier

import (
	"errors"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var (
	ErrCourierIsNotConstructed = errors.New("courier must be created via NewCourier")
	ErrCourierIsUnavailable    = errors.New("courier is not available")
)

type Courier struct {
	id          kernel.UUID
	location    kernel.Coordinates
	available   bool
	lastUpdated time.Time
	guard       guard.ConstructorGuard
}

// NewCourier registers a courier at the placeholder origin, available for
// work until the first real location report arrives.
func NewCourier(id kernel.UUID, now time.Time) (*Courier, error) {
	return RestoreCourier(id, kernel.Origin(), true, now)
}

func RestoreCourier(id kernel.UUID, location kernel.Coordinates, available bool, lastUpdated time.Time) (*Courier, error) {
	c := &Courier{
		available:   available,
		lastUpdated: lastUpdated,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Location() kernel.Coordinates {
	return c.location
}

func (c *Courier) IsAvailable() bool {
	return c.available
}

func (c *Courier) LastUpdated() time.Time {
	return c.lastUpdated
}

// Report overwrites position and availability. Reports are last-write-wins.
func (c *Courier) Report(location kernel.Coordinates, available bool, now time.Time) error {
	if err := c.setLocation(location); err != nil {
		return err
	}
	c.available = available
	c.lastUpdated = now
	return nil
}

func (c *Courier) SetAvailability(available bool, now time.Time) {
	c.available = available
	c.lastUpdated = now
}

// Reserve takes the courier out of the available pool for a new order.
func (c *Courier) Reserve(now time.Time) error {
	if !c.available {
		return ErrCourierIsUnavailable
	}
	c.available = false
	c.lastUpdated = now
	return nil
}

func (c *Courier) Release(now time.Time) {
	c.available = true
	c.lastUpdated = now
}

func (c *Courier) DistanceKmTo(point kernel.Coordinates) float64 {
	return c.location.DistanceKm(point)
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courier_id", err)
	}
	c.id = id
	return nil
}

func (c *Courier) setLocation(location kernel.Coordinates) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("location", err)
	}
	c.location = location
	return nil
}
