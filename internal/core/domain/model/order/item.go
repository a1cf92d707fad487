package order

import (
	"errors"
	"fmt"
	"strings"

	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrItemNotConstructed = errors.New("item must be created via NewItem")

type Item struct {
	description string
	weightKg    float64
	guard       guard.ConstructorGuard
}

func NewItem(description string, weightKg float64) (Item, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Item{}, errs.NewValueIsRequiredError("item_description")
	}
	if !(weightKg > 0) {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"item_weight", fmt.Errorf("%v is not greater than 0", weightKg))
	}
	return Item{description: description, weightKg: weightKg, guard: guard.NewConstructorGuard()}, nil
}

func (i Item) Description() string {
	return i.description
}

func (i Item) WeightKg() float64 {
	return i.weightKg
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemNotConstructed)
}
