package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/payment"
)

// PaymentRepository is append-only.
type PaymentRepository interface {
	Add(ctx context.Context, entry *payment.Entry) error
}
