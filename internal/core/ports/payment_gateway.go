package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/payment"
)

type TransactionRequest struct {
	GatewayOrderID string
	Amount         int64
	Customer       payment.Customer
}

type Transaction struct {
	Token       string
	RedirectURL string
}

// PaymentGateway creates hosted-checkout transactions. Implementations bound
// the call with a timeout and return errs.ExternalServiceError on failure.
type PaymentGateway interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (Transaction, error)
}
