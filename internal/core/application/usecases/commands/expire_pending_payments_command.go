package commands

import (
	"errors"
	"time"

	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrExpirePendingPaymentsCommandIsNotConstructed = errors.New(
	"ExpirePendingPaymentsCommand must be created via NewExpirePendingPaymentsCommand constructor",
)

// ExpirePendingPaymentsCommand expires payments requested before the given
// instant that the gateway never settled.
type ExpirePendingPaymentsCommand struct {
	before time.Time
	limit  int

	guard guard.ConstructorGuard
}

func NewExpirePendingPaymentsCommand(before time.Time, limit int) (ExpirePendingPaymentsCommand, error) {
	var err error
	if before.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("before"))
	}
	if limit <= 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded"))
	}
	if err != nil {
		return ExpirePendingPaymentsCommand{}, err
	}

	return ExpirePendingPaymentsCommand{
		before: before,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ExpirePendingPaymentsCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingPaymentsCommandIsNotConstructed)
}

func (c ExpirePendingPaymentsCommand) Before() time.Time {
	return c.before
}

func (c ExpirePendingPaymentsCommand) Limit() int {
	return c.limit
}
