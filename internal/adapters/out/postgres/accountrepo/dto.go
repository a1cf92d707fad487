package accountrepo

import (
	"time"

	"campusdelivery/internal/core/domain/model/account"
	"campusdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ProfileDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName  string    `gorm:"type:varchar(255);not null"`
	Phone     string    `gorm:"type:varchar(32)"`
	Role      string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (ProfileDTO) TableName() string {
	return "profiles"
}

func fromDomain(p *account.Profile) ProfileDTO {
	return ProfileDTO{
		ID:        p.ID().Google(),
		Email:     p.Email(),
		FullName:  p.FullName(),
		Phone:     p.Phone(),
		Role:      p.Role().String(),
		CreatedAt: p.CreatedAt(),
	}
}

func toDomain(dto ProfileDTO) (*account.Profile, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	role, err := kernel.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return account.NewProfile(id, dto.Email, dto.FullName, dto.Phone, role, dto.CreatedAt)
}
