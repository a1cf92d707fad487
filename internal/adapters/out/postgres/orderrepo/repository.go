package orderrepo

import (
	"context"
	"errors"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/metrics"

	"gorm.io/gorm"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.appendTracking(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	dto := fromDomain(aggregate)
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Omit("ID", "CreatedAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionConflictError("order", aggregate.ID().String(), expected)
	}

	aggregate.IncrementVersion()
	if err := r.appendTracking(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*order.Order, error) {
	if gatewayOrderID == "" {
		return nil, errs.NewValueIsRequiredError("gateway_order_id")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "gateway_order_id = ?", gatewayOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("gateway_order_id", gatewayOrderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) GetAllSearching(ctx context.Context, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", order.SearchingCourier.String()).
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func (r *GormOrderRepository) GetAllPaymentPendingSince(
	ctx context.Context,
	before time.Time,
	limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND payment_status = ? AND payment_requested_at < ?",
			order.WaitingPayment.String(), order.PaymentPending.String(), before).
		Order("payment_requested_at ASC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func (r *GormOrderRepository) appendTracking(ctx context.Context, aggregate *order.Order) error {
	changes := aggregate.PullStatusChanges()
	if len(changes) == 0 {
		return nil
	}

	rows := make([]TrackingDTO, 0, len(changes))
	for _, change := range changes {
		rows = append(rows, trackingFromChange(aggregate.ID().Google(), change))
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}

	for _, change := range changes {
		metrics.OrderStatusTransitionsTotal.WithLabelValues(change.Status.String()).Inc()
	}
	return nil
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
