// Package ports declares what the core needs from the outside world:
// persistence, the payment gateway, the identity provider and event
// publishing.
package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/courier"
	"campusdelivery/internal/core/domain/model/kernel"
)

type CourierRepository interface {
	Add(ctx context.Context, courier *courier.Courier) error

	Update(ctx context.Context, courier *courier.Courier) error

	// Get returns errs.ObjectNotFoundError when the courier has no record.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetForUpdate is Get that also locks the record for the rest of the
	// transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable returns available couriers, least recently updated
	// first. Inside a transaction the rows stay locked until commit and rows
	// locked by concurrent matchers are skipped.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
