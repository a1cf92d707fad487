package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/payment"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/metrics"
)

// ReconcileResult tells the caller what happened to a notification. Every
// result is acknowledged to the gateway.
type ReconcileResult string

const (
	ReconcileApplied   ReconcileResult = "applied"
	ReconcileUnmatched ReconcileResult = "unmatched"
	ReconcileRejected  ReconcileResult = "rejected"
	ReconcileIgnored   ReconcileResult = "ignored"
	ReconcileDuplicate ReconcileResult = "duplicate"

	// ReconcilePaidAfterCancel is applied like any other outcome but flags a
	// captured payment for an order that will never be delivered.
	ReconcilePaidAfterCancel ReconcileResult = "paid_after_cancel"
)

type orderMatcher interface {
	Handle(ctx context.Context, cmd MatchOrderCommand) (*order.Order, error)
}

// ReconcilePaymentCommandHandler applies gateway notifications to orders and
// the payment ledger. Replaying a notification never changes the final order
// state; the ledger only grows.
type ReconcilePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	dedup      ports.WebhookDeduplicator
	matcher    orderMatcher
	logger     *slog.Logger
}

// NewReconcilePaymentCommandHandler wires the handler. dedup and matcher are
// optional: without dedup every notification is processed, without matcher
// paid orders wait for the scheduled matching job.
func NewReconcilePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	dedup ports.WebhookDeduplicator,
	matcher orderMatcher,
	logger *slog.Logger,
) ReconcilePaymentCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ReconcilePaymentCommandHandler{
		uowFactory: uowFactory,
		dedup:      dedup,
		matcher:    matcher,
		logger:     logger.With("component", "payment_reconciler"),
	}
}

// Handle returns an error only when the notification could not be processed
// because of an infrastructure failure.
func (h ReconcilePaymentCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentCommand) (ReconcileResult, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	result, err := h.reconcile(ctx, cmd)
	if err != nil {
		metrics.WebhooksTotal.WithLabelValues("error").Inc()
		h.logger.ErrorContext(ctx, "payment reconciliation failed",
			"gateway_order_id", cmd.GatewayOrderID(),
			"transaction_status", cmd.TransactionStatus(),
			"error", err,
		)
		return "", err
	}

	metrics.WebhooksTotal.WithLabelValues(string(result)).Inc()
	return result, nil
}

func (h ReconcilePaymentCommandHandler) reconcile(ctx context.Context, cmd ReconcilePaymentCommand) (ReconcileResult, error) {
	outcome, err := resolveOutcome(cmd)
	if err != nil {
		h.logger.WarnContext(ctx, "rejected payment notification",
			"gateway_order_id", cmd.GatewayOrderID(),
			"transaction_status", cmd.TransactionStatus(),
			"fraud_status", cmd.FraudStatus(),
			"error", err,
		)
		return ReconcileRejected, nil
	}

	if h.dedup != nil {
		first, err := h.dedup.MarkProcessed(ctx, cmd.DeduplicationKey())
		if err != nil {
			h.logger.WarnContext(ctx, "webhook deduplication unavailable", "error", err)
		} else if !first {
			return ReconcileDuplicate, nil
		}
	}

	result, o, err := h.apply(ctx, cmd, outcome)
	if err != nil {
		h.forget(ctx, cmd)
		return "", err
	}

	if result == ReconcileApplied && o.Status() == order.SearchingCourier {
		h.matchPaid(ctx, o)
	}
	return result, nil
}

func (h ReconcilePaymentCommandHandler) apply(
	ctx context.Context,
	cmd ReconcilePaymentCommand,
	outcome order.PaymentStatus,
) (ReconcileResult, *order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByGatewayOrderID(ctx, cmd.GatewayOrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "payment notification for unknown order",
			"gateway_order_id", cmd.GatewayOrderID(),
			"transaction_status", cmd.TransactionStatus(),
		)
		return ReconcileUnmatched, nil, nil
	}
	if err != nil {
		return "", nil, err
	}

	before := o.Version()
	statusBefore, paymentBefore := o.Status(), o.PaymentStatus()

	at := now()
	err = o.ApplyPaymentOutcome(outcome, at)
	if errors.Is(err, order.ErrPaymentAlreadySettled) {
		h.logger.WarnContext(ctx, "stale payment outcome ignored",
			"order_id", o.ID().String(),
			"gateway_order_id", cmd.GatewayOrderID(),
			"outcome", outcome.String(),
		)
		return ReconcileIgnored, o, nil
	}
	if err != nil {
		return "", nil, err
	}

	if o.Status() != statusBefore || o.PaymentStatus() != paymentBefore {
		if err = orderRepo.Update(ctx, o); err != nil {
			return "", nil, err
		}
	}

	var paidAt *time.Time
	if outcome == order.PaymentPaid {
		paidAt = &at
	}
	entry, err := payment.NewEntry(o.ID(), cmd.TransactionID(), o.Fee(), outcome, paidAt, at)
	if err != nil {
		return "", nil, err
	}
	if err = uow.PaymentRepository().Add(ctx, entry); err != nil {
		return "", nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", nil, err
	}

	if outcome == order.PaymentPaid && o.Status() == order.Cancelled {
		h.logger.WarnContext(ctx, "payment settled for cancelled order",
			"order_id", o.ID().String(),
			"gateway_order_id", cmd.GatewayOrderID(),
			"version", o.Version(),
		)
		return ReconcilePaidAfterCancel, o, nil
	}

	h.logger.InfoContext(ctx, "payment notification applied",
		"order_id", o.ID().String(),
		"outcome", outcome.String(),
		"status", o.Status().String(),
		"version_before", before,
		"version", o.Version(),
	)
	return ReconcileApplied, o, nil
}

// matchPaid tries to find a courier right after settlement. Failure leaves
// the order searching; the matching job retries it.
func (h ReconcilePaymentCommandHandler) matchPaid(ctx context.Context, o *order.Order) {
	if h.matcher == nil {
		return
	}

	cmd, err := NewMatchOrderCommand(kernel.SystemPrincipal(), o.ID())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build match command", "order_id", o.ID().String(), "error", err)
		return
	}

	_, err = h.matcher.Handle(ctx, cmd)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoCouriersAvailable):
		h.logger.InfoContext(ctx, "no courier available for paid order", "order_id", o.ID().String())
	default:
		h.logger.ErrorContext(ctx, "automatic matching failed", "order_id", o.ID().String(), "error", err)
	}
}

func (h ReconcilePaymentCommandHandler) forget(ctx context.Context, cmd ReconcilePaymentCommand) {
	if h.dedup == nil {
		return
	}
	if err := h.dedup.Forget(ctx, cmd.DeduplicationKey()); err != nil {
		h.logger.WarnContext(ctx, "failed to release webhook deduplication key", "error", err)
	}
}

func resolveOutcome(cmd ReconcilePaymentCommand) (order.PaymentStatus, error) {
	tx, err := payment.ParseTransactionStatus(cmd.TransactionStatus())
	if err != nil {
		return order.PaymentUnknown, err
	}
	fraud, err := payment.ParseFraudStatus(cmd.FraudStatus())
	if err != nil {
		return order.PaymentUnknown, err
	}
	return payment.ResolveOutcome(tx, fraud)
}
