package commands

import (
	"context"
	"errors"

	"campusdelivery/internal/pkg/errs"
)

// ExpirePendingPaymentsCommandHandler moves stale pending payments to
// expired. The order stays in waiting_payment so the requester can retry.
// Orders updated concurrently (for example by a late webhook) are skipped.
type ExpirePendingPaymentsCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewExpirePendingPaymentsCommandHandler(uowFactory OrderUoWFactory) ExpirePendingPaymentsCommandHandler {
	return ExpirePendingPaymentsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of expired payments.
func (h ExpirePendingPaymentsCommandHandler) Handle(ctx context.Context, cmd ExpirePendingPaymentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	stale, err := repo.GetAllPaymentPendingSince(ctx, cmd.Before(), cmd.Limit())
	if err != nil {
		return 0, err
	}

	at := now()
	expired := 0
	for _, o := range stale {
		if err = o.ExpirePayment(at); err != nil {
			return 0, err
		}
		err = repo.Update(ctx, o)
		if errors.Is(err, errs.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return 0, err
		}
		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return expired, nil
}
