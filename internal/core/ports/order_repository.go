package ports

import (
	"context"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
)

type OrderRepository interface {
	// Add inserts the order and its pending status changes as tracking
	// entries.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order only if the stored version still equals
	// aggregate.Version(), otherwise errs.VersionConflictError is returned.
	// Pending status changes are appended as tracking entries.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*order.Order, error)

	// GetAllSearching returns up to limit orders waiting for a courier, oldest
	// first.
	GetAllSearching(ctx context.Context, limit int) ([]*order.Order, error)

	// GetAllPaymentPendingSince returns orders whose payment was requested
	// before the given instant and is still pending.
	GetAllPaymentPendingSince(ctx context.Context, before time.Time, limit int) ([]*order.Order, error)
}
