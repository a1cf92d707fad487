package orderrepo

import (
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequesterID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID          *uuid.UUID `gorm:"type:uuid;index"`
	PickupAddress      string     `gorm:"type:text;not null"`
	PickupLat          *float64
	PickupLng          *float64
	DeliveryAddress    string `gorm:"type:text;not null"`
	DeliveryLat        *float64
	DeliveryLng        *float64
	ItemDescription    string  `gorm:"type:text;not null"`
	ItemWeight         float64 `gorm:"not null"`
	DeliveryType       string  `gorm:"type:varchar(16);not null"`
	Fee                int64   `gorm:"not null"`
	EstimatedDistance  float64 `gorm:"not null"`
	EtaMinMinutes      int     `gorm:"not null"`
	EtaMaxMinutes      int     `gorm:"not null"`
	Status             string  `gorm:"type:varchar(32);not null;index"`
	PaymentStatus      string  `gorm:"type:varchar(16);not null;index"`
	PaymentToken       *string `gorm:"type:text"`
	GatewayOrderID     *string `gorm:"type:varchar(128);uniqueIndex"`
	PaymentRequestedAt *time.Time
	CreatedAt          time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"not null;autoUpdateTime:false"`
	Version            int64     `gorm:"not null;default:1"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// TrackingDTO is one row of the append-only status log of an order.
type TrackingDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(32);not null"`
	Notes     *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
}

func (TrackingDTO) TableName() string {
	return "order_tracking"
}

func fromDomain(o *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := o.CourierID(); id != nil {
		raw := id.Google()
		courierID = &raw
	}

	dto := OrderDTO{
		ID:                 o.ID().Google(),
		RequesterID:        o.RequesterID().Google(),
		CourierID:          courierID,
		PickupAddress:      o.Pickup().Text(),
		DeliveryAddress:    o.Delivery().Text(),
		ItemDescription:    o.Item().Description(),
		ItemWeight:         o.Item().WeightKg(),
		DeliveryType:       o.DeliveryType().String(),
		Fee:                o.Fee(),
		EstimatedDistance:  o.Quote().DistanceKm,
		EtaMinMinutes:      o.Quote().Eta.MinMinutes,
		EtaMaxMinutes:      o.Quote().Eta.MaxMinutes,
		Status:             o.Status().String(),
		PaymentStatus:      o.PaymentStatus().String(),
		PaymentToken:       optionalString(o.PaymentToken()),
		GatewayOrderID:     optionalString(o.GatewayOrderID()),
		PaymentRequestedAt: o.PaymentRequestedAt(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		Version:            o.Version(),
	}
	if c := o.Pickup().Coordinates(); c != nil {
		lat, lng := c.Lat(), c.Lng()
		dto.PickupLat, dto.PickupLng = &lat, &lng
	}
	if c := o.Delivery().Coordinates(); c != nil {
		lat, lng := c.Lat(), c.Lng()
		dto.DeliveryLat, dto.DeliveryLng = &lat, &lng
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	requesterID, err := kernel.UUIDFromGoogle(dto.RequesterID)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromGoogle(*dto.CourierID)
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	pickup, err := toAddress("pickup_address", dto.PickupAddress, dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}
	delivery, err := toAddress("delivery_address", dto.DeliveryAddress, dto.DeliveryLat, dto.DeliveryLng)
	if err != nil {
		return nil, err
	}
	item, err := order.NewItem(dto.ItemDescription, dto.ItemWeight)
	if err != nil {
		return nil, err
	}
	deliveryType, err := order.ParseDeliveryType(dto.DeliveryType)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           id,
		RequesterID:  requesterID,
		CourierID:    courierID,
		Pickup:       pickup,
		Delivery:     delivery,
		Item:         item,
		DeliveryType: deliveryType,
		Quote: order.Quote{
			DistanceKm: dto.EstimatedDistance,
			Fee:        dto.Fee,
			Eta:        order.Eta{MinMinutes: dto.EtaMinMinutes, MaxMinutes: dto.EtaMaxMinutes},
		},
		Status:             status,
		PaymentStatus:      paymentStatus,
		PaymentToken:       derefString(dto.PaymentToken),
		GatewayOrderID:     derefString(dto.GatewayOrderID),
		PaymentRequestedAt: dto.PaymentRequestedAt,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
		Version:            dto.Version,
	})
}

func toAddress(param, text string, lat, lng *float64) (order.Address, error) {
	if lat == nil || lng == nil {
		return order.NewAddress(param, text, nil)
	}
	coords, err := kernel.NewCoordinates(*lat, *lng)
	if err != nil {
		return order.Address{}, err
	}
	return order.NewAddress(param, text, &coords)
}

func trackingFromChange(orderID uuid.UUID, change order.StatusChange) TrackingDTO {
	return TrackingDTO{
		ID:        uuid.New(),
		OrderID:   orderID,
		Status:    change.Status.String(),
		Notes:     optionalString(change.Notes),
		CreatedAt: change.At,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
