package commands

import (
	"context"
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/payment"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/pkg/errs"
)

// PaymentSession is what the requester needs to complete checkout.
type PaymentSession struct {
	Token          string
	RedirectURL    string
	GatewayOrderID string
}

// InitiatePaymentCommandHandler creates a gateway transaction and records the
// returned token on the order. The gateway call happens outside the
// transaction and the order is written only after the gateway confirmed, so a
// failed or timed out call leaves the order untouched.
type InitiatePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

func NewInitiatePaymentCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
) InitiatePaymentCommandHandler {
	return InitiatePaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

func (h InitiatePaymentCommandHandler) Handle(ctx context.Context, cmd InitiatePaymentCommand) (PaymentSession, error) {
	if err := cmd.Validate(); err != nil {
		return PaymentSession{}, err
	}

	current, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return PaymentSession{}, err
	}
	if err = authorizeRequesterAction(cmd.Principal(), current, "pay for"); err != nil {
		return PaymentSession{}, err
	}
	if err = validatePayable(current, cmd.Amount()); err != nil {
		return PaymentSession{}, err
	}

	at := now()
	gatewayOrderID := payment.NewGatewayOrderID(current.ID(), at)
	tx, err := h.gateway.CreateTransaction(ctx, ports.TransactionRequest{
		GatewayOrderID: gatewayOrderID,
		Amount:         current.Fee(),
		Customer:       cmd.Customer(),
	})
	if err != nil {
		var external *errs.ExternalServiceError
		if !errors.As(err, &external) {
			err = errs.NewExternalServiceError("payment gateway", err)
		}
		return PaymentSession{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return PaymentSession{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return PaymentSession{}, err
	}
	if err = o.ExpectVersion(current.Version()); err != nil {
		return PaymentSession{}, err
	}
	if err = o.InitiatePayment(tx.Token, gatewayOrderID, at); err != nil {
		return PaymentSession{}, err
	}
	if err = repo.Update(ctx, o); err != nil {
		return PaymentSession{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PaymentSession{}, err
	}

	return PaymentSession{
		Token:          tx.Token,
		RedirectURL:    tx.RedirectURL,
		GatewayOrderID: gatewayOrderID,
	}, nil
}

// validatePayable runs the order-side checks before the gateway is contacted.
func validatePayable(o *order.Order, amount int64) error {
	if amount != o.Fee() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%d does not match the order fee %d", amount, o.Fee()))
	}
	if o.PaymentStatus() == order.PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause("payment_status", order.ErrPaymentAlreadySettled)
	}
	if o.Status() != order.Pending && o.Status() != order.WaitingPayment {
		return order.NewInvalidTransitionError(o.Status(), order.WaitingPayment)
	}
	return nil
}
