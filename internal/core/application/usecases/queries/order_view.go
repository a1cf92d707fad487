// Package queries contains the read side: handlers that read straight from
// the relational store into flat views, without loading aggregates.
package queries

import (
	"database/sql"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderView is the read model of an order.
type OrderView struct {
	ID                  kernel.UUID
	RequesterID         kernel.UUID
	CourierID           *kernel.UUID
	PickupAddress       string
	PickupCoordinates   *kernel.Coordinates
	DeliveryAddress     string
	DeliveryCoordinates *kernel.Coordinates
	ItemDescription     string
	ItemWeightKg        float64
	DeliveryType        string
	Fee                 int64
	DistanceKm          float64
	Eta                 order.Eta
	Status              order.Status
	PaymentStatus       order.PaymentStatus
	PaymentToken        string
	GatewayOrderID      string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int64
}

// VisibleTo reports whether p may read the order: its requester, its courier,
// any courier while it is still looking for one, and admins.
func (v OrderView) VisibleTo(p kernel.Principal) bool {
	switch {
	case p.IsAdmin():
		return true
	case p.ID().IsEqual(v.RequesterID):
		return true
	case v.CourierID != nil && v.CourierID.IsEqual(p.ID()):
		return true
	case p.IsCourier() && v.Status == order.SearchingCourier:
		return true
	}
	return false
}

const orderColumns = `
	id,
	requester_id,
	courier_id,
	pickup_address,
	pickup_lat,
	pickup_lng,
	delivery_address,
	delivery_lat,
	delivery_lng,
	item_description,
	item_weight,
	delivery_type,
	fee,
	estimated_distance,
	eta_min_minutes,
	eta_max_minutes,
	status,
	payment_status,
	payment_token,
	gateway_order_id,
	created_at,
	updated_at,
	version`

func scanOrderView(rows *sql.Rows) (OrderView, error) {
	var (
		view                     OrderView
		id, requesterID          uuid.UUID
		courierID                *uuid.UUID
		pickupLat, pickupLng     *float64
		deliveryLat, deliveryLng *float64
		status, paymentStatus    string
		paymentToken, gatewayID  *string
	)

	err := rows.Scan(
		&id,
		&requesterID,
		&courierID,
		&view.PickupAddress,
		&pickupLat,
		&pickupLng,
		&view.DeliveryAddress,
		&deliveryLat,
		&deliveryLng,
		&view.ItemDescription,
		&view.ItemWeightKg,
		&view.DeliveryType,
		&view.Fee,
		&view.DistanceKm,
		&view.Eta.MinMinutes,
		&view.Eta.MaxMinutes,
		&status,
		&paymentStatus,
		&paymentToken,
		&gatewayID,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.Version,
	)
	if err != nil {
		return OrderView{}, err
	}

	if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return OrderView{}, err
	}
	if view.RequesterID, err = kernel.UUIDFromGoogle(requesterID); err != nil {
		return OrderView{}, err
	}
	if courierID != nil {
		cid, err := kernel.UUIDFromGoogle(*courierID)
		if err != nil {
			return OrderView{}, err
		}
		view.CourierID = &cid
	}
	if view.PickupCoordinates, err = optionalCoordinates(pickupLat, pickupLng); err != nil {
		return OrderView{}, err
	}
	if view.DeliveryCoordinates, err = optionalCoordinates(deliveryLat, deliveryLng); err != nil {
		return OrderView{}, err
	}
	if view.Status, err = order.ParseStatus(status); err != nil {
		return OrderView{}, err
	}
	if view.PaymentStatus, err = order.ParsePaymentStatus(paymentStatus); err != nil {
		return OrderView{}, err
	}
	if paymentToken != nil {
		view.PaymentToken = *paymentToken
	}
	if gatewayID != nil {
		view.GatewayOrderID = *gatewayID
	}

	return view, nil
}

func optionalCoordinates(lat, lng *float64) (*kernel.Coordinates, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}
	c, err := kernel.NewCoordinates(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
