// Package commands contains the write operations of the marketplace. Every
// command is built through its constructor, validated by its handler and
// applied inside a unit of work.
package commands

import (
	"context"

	"campusdelivery/internal/core/ports"
)

// Unit of Work interfaces narrow the transactional surface each handler sees.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// OrderUoW is used by commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW is used by commands that only touch the courier registry.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW spans orders and couriers. Matching, acceptance and cancellation
	// write both in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   courierRepo := uow.CourierRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// PaymentUoW writes an order together with its payment ledger entry.
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// AccountUoW writes a profile and, for couriers, the registry record.
	AccountUoW interface {
		TxManager
		AccountRepoFactory
		CourierRepoFactory
	}

	AccountUoWFactory interface {
		Create() AccountUoW
	}
)
