package paymentrepo

import (
	"context"

	"campusdelivery/internal/core/domain/model/payment"

	"gorm.io/gorm"
)

// GormPaymentRepository appends ledger rows. Rows are never updated.
type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Add(ctx context.Context, entry *payment.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
