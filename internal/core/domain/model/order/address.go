package order

import (
	"errors"
	"strings"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrAddressNotConstructed = errors.New("address must be created via NewAddress")

// Address is a free-text place on campus with optional coordinates.
type Address struct {
	text        string
	coordinates *kernel.Coordinates
	guard       guard.ConstructorGuard
}

func NewAddress(paramName, text string, coordinates *kernel.Coordinates) (Address, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Address{}, errs.NewValueIsRequiredError(paramName)
	}
	if coordinates != nil {
		if err := coordinates.Validate(); err != nil {
			return Address{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
		}
		c := *coordinates
		coordinates = &c
	}
	return Address{text: text, coordinates: coordinates, guard: guard.NewConstructorGuard()}, nil
}

func (a Address) Text() string {
	return a.text
}

// Coordinates returns nil when the requester gave only a textual address.
func (a Address) Coordinates() *kernel.Coordinates {
	if a.coordinates == nil {
		return nil
	}
	c := *a.coordinates
	return &c
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressNotConstructed)
}
