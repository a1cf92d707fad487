package postgres

import (
	"context"
	"log/slog"
	"time"

	"campusdelivery/internal/adapters/out/postgres/accountrepo"
	"campusdelivery/internal/adapters/out/postgres/courierrepo"
	"campusdelivery/internal/adapters/out/postgres/orderrepo"
	"campusdelivery/internal/adapters/out/postgres/paymentrepo"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/pkg/metrics"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory builds units of work over db. publisher may be nil,
// in which case committed order changes are not announced.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.OrderEventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishTracked(ctx)
	return nil
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn())
}

func (uow *GormUnitOfWork) AccountRepository() ports.AccountRepository {
	return accountrepo.NewGormAccountRepository(uow.conn())
}

func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// publishTracked announces the final state of every order written in the
// committed transaction. Publishing failures are logged; the write stands.
func (uow *GormUnitOfWork) publishTracked(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)
	if uow.publisher == nil {
		return
	}

	now := time.Now().UTC()
	seen := make(map[kernel.UUID]int)
	events := make([]ports.OrderChanged, 0, len(tracked))
	for _, t := range tracked {
		o, ok := t.Aggregate.(*order.Order)
		if !ok {
			continue
		}
		event := ports.NewOrderChanged(o, now)
		if i, dup := seen[t.ID]; dup {
			events[i] = event
			continue
		}
		seen[t.ID] = len(events)
		events = append(events, event)
	}
	if len(events) == 0 {
		return
	}

	if err := uow.publisher.Publish(ctx, events...); err != nil {
		metrics.OrderEventsPublishedTotal.WithLabelValues("failed").Add(float64(len(events)))
		uow.logger.ErrorContext(ctx, "failed to publish order changes",
			"count", len(events),
			"error", err,
		)
		return
	}
	metrics.OrderEventsPublishedTotal.WithLabelValues("published").Add(float64(len(events)))
}
