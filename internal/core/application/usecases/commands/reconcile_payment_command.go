package commands

import (
	"errors"
	"strings"

	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrReconcilePaymentCommandIsNotConstructed = errors.New(
	"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
)

// ReconcilePaymentCommand carries one gateway notification. Statuses are kept
// as received; unknown values are reported by the handler as rejected rather
// than failing construction, so the notification can still be acknowledged.
type ReconcilePaymentCommand struct {
	gatewayOrderID    string
	transactionID     string
	transactionStatus string
	fraudStatus       string

	guard guard.ConstructorGuard
}

func NewReconcilePaymentCommand(
	gatewayOrderID, transactionID, transactionStatus, fraudStatus string,
) (ReconcilePaymentCommand, error) {
	gatewayOrderID = strings.TrimSpace(gatewayOrderID)
	if gatewayOrderID == "" {
		return ReconcilePaymentCommand{}, errs.NewValueIsRequiredError("order_id")
	}

	return ReconcilePaymentCommand{
		gatewayOrderID:    gatewayOrderID,
		transactionID:     strings.TrimSpace(transactionID),
		transactionStatus: transactionStatus,
		fraudStatus:       fraudStatus,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

func (c ReconcilePaymentCommand) GatewayOrderID() string {
	return c.gatewayOrderID
}

// TransactionID falls back to the gateway order id when the gateway sent none.
func (c ReconcilePaymentCommand) TransactionID() string {
	if c.transactionID == "" {
		return c.gatewayOrderID
	}
	return c.transactionID
}

func (c ReconcilePaymentCommand) TransactionStatus() string {
	return c.transactionStatus
}

func (c ReconcilePaymentCommand) FraudStatus() string {
	return c.fraudStatus
}

// DeduplicationKey identifies a notification by what it says, not by when it
// arrived.
func (c ReconcilePaymentCommand) DeduplicationKey() string {
	return strings.Join([]string{
		c.gatewayOrderID,
		strings.ToLower(strings.TrimSpace(c.transactionStatus)),
		strings.ToLower(strings.TrimSpace(c.fraudStatus)),
	}, "|")
}
