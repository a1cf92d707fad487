package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit publishes OrderChanged events for every order written in the
	// transaction once the transaction has committed.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	CourierRepository() CourierRepository

	OrderRepository() OrderRepository

	PaymentRepository() PaymentRepository

	AccountRepository() AccountRepository
}
