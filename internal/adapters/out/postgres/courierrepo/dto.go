package courierrepo

import (
	"time"

	"campusdelivery/internal/core/domain/model/courier"
	"campusdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CourierDTO struct {
	CourierID   uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Location    LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	IsAvailable bool        `gorm:"not null;index"`
	LastUpdated time.Time   `gorm:"not null;index"`
}

func (CourierDTO) TableName() string {
	return "courier_locations"
}

type LocationDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		CourierID: c.ID().Google(),
		Location: LocationDTO{
			Lat: c.Location().Lat(),
			Lng: c.Location().Lng(),
		},
		IsAvailable: c.IsAvailable(),
		LastUpdated: c.LastUpdated(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromGoogle(dto.CourierID)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewCoordinates(dto.Location.Lat, dto.Location.Lng)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, location, dto.IsAvailable, dto.LastUpdated)
}
