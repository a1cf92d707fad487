package commands

import (
	"errors"

	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrMatchSearchingOrdersCommandIsNotConstructed = errors.New(
	"MatchSearchingOrdersCommand must be created via NewMatchSearchingOrdersCommand constructor",
)

// MatchSearchingOrdersCommand retries matching for up to limit orders still
// searching for a courier, oldest first.
type MatchSearchingOrdersCommand struct {
	limit int

	guard guard.ConstructorGuard
}

func NewMatchSearchingOrdersCommand(limit int) (MatchSearchingOrdersCommand, error) {
	if limit <= 0 {
		return MatchSearchingOrdersCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return MatchSearchingOrdersCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c MatchSearchingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrMatchSearchingOrdersCommandIsNotConstructed)
}

func (c MatchSearchingOrdersCommand) Limit() int {
	return c.limit
}
