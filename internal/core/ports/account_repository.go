package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/account"
	"campusdelivery/internal/core/domain/model/kernel"
)

type AccountRepository interface {
	Add(ctx context.Context, profile *account.Profile) error

	Get(ctx context.Context, id kernel.UUID) (*account.Profile, error)
}
