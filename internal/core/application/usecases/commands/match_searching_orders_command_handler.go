package commands

import (
	"context"
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/pkg/errs"
)

type MatchBatchResult struct {
	Matched int
	Pending int
}

// MatchSearchingOrdersCommandHandler runs the matching engine over the
// backlog. Each order is matched in its own transaction; the run stops early
// once no courier is left.
type MatchSearchingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	matcher    orderMatcher
}

func NewMatchSearchingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	matcher orderMatcher,
) MatchSearchingOrdersCommandHandler {
	return MatchSearchingOrdersCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
	}
}

func (h MatchSearchingOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd MatchSearchingOrdersCommand,
) (MatchBatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return MatchBatchResult{}, err
	}

	backlog, err := h.uowFactory.Create().OrderRepository().GetAllSearching(ctx, cmd.Limit())
	if err != nil {
		return MatchBatchResult{}, err
	}

	result := MatchBatchResult{Pending: len(backlog)}
	for _, o := range backlog {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		match, err := NewMatchOrderCommand(kernel.SystemPrincipal(), o.ID())
		if err != nil {
			return result, err
		}

		_, err = h.matcher.Handle(ctx, match)
		switch {
		case err == nil:
			result.Matched++
			result.Pending--
		case errors.Is(err, services.ErrNoCouriersAvailable):
			return result, nil
		case errors.Is(err, errs.ErrVersionConflict), errors.Is(err, errs.ErrValueIsInvalid):
			// Changed since it was listed: matched by a courier, cancelled.
			result.Pending--
		default:
			return result, err
		}
	}

	return result, nil
}
