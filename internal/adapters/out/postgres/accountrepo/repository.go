package accountrepo

import (
	"context"
	"errors"

	"campusdelivery/internal/core/domain/model/account"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) Add(ctx context.Context, profile *account.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := fromDomain(profile)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("email", err)
		}
		return err
	}
	return nil
}

func (r *GormAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Profile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("profile", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
