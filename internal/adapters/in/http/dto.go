package http

import (
	"time"

	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/courier"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c *Coordinates) toDomain() (*kernel.Coordinates, error) {
	if c == nil {
		return nil, nil
	}
	coords, err := kernel.NewCoordinates(c.Lat, c.Lng)
	if err != nil {
		return nil, err
	}
	return &coords, nil
}

func coordinatesOf(c *kernel.Coordinates) *Coordinates {
	if c == nil {
		return nil
	}
	return &Coordinates{Lat: c.Lat(), Lng: c.Lng()}
}

type Eta struct {
	MinMinutes int `json:"min_minutes"`
	MaxMinutes int `json:"max_minutes"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type PrincipalResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token,omitempty"`
	ExpiresIn    int               `json:"expires_in"`
	Principal    PrincipalResponse `json:"principal"`
}

type QuoteRequest struct {
	PickupCoordinates   *Coordinates `json:"pickup_coordinates"`
	DeliveryCoordinates *Coordinates `json:"delivery_coordinates"`
	ItemWeightKg        float64      `json:"item_weight"`
	DeliveryType        string       `json:"delivery_type"`
}

type QuoteResponse struct {
	DistanceKm float64 `json:"distance_km"`
	Fee        int64   `json:"fee"`
	Eta        Eta     `json:"eta"`
}

type CreateOrderRequest struct {
	// RequesterID is only honoured for admins; it defaults to the caller.
	RequesterID         string       `json:"requester_id,omitempty"`
	PickupAddress       string       `json:"pickup_address"`
	PickupCoordinates   *Coordinates `json:"pickup_coordinates"`
	DeliveryAddress     string       `json:"delivery_address"`
	DeliveryCoordinates *Coordinates `json:"delivery_coordinates"`
	ItemDescription     string       `json:"item_description"`
	ItemWeightKg        float64      `json:"item_weight"`
	DeliveryType        string       `json:"delivery_type"`
}

type OrderResponse struct {
	ID                  string       `json:"id"`
	RequesterID         string       `json:"requester_id"`
	CourierID           *string      `json:"courier_id"`
	PickupAddress       string       `json:"pickup_address"`
	PickupCoordinates   *Coordinates `json:"pickup_coordinates"`
	DeliveryAddress     string       `json:"delivery_address"`
	DeliveryCoordinates *Coordinates `json:"delivery_coordinates"`
	ItemDescription     string       `json:"item_description"`
	ItemWeightKg        float64      `json:"item_weight"`
	DeliveryType        string       `json:"delivery_type"`
	Fee                 int64        `json:"fee"`
	DistanceKm          float64      `json:"estimated_distance"`
	Eta                 Eta          `json:"estimated_time"`
	Status              string       `json:"status"`
	PaymentStatus       string       `json:"payment_status"`
	PaymentToken        string       `json:"payment_token,omitempty"`
	GatewayOrderID      string       `json:"midtrans_order_id,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
	Version             int64        `json:"version"`
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func orderResponse(o *order.Order) OrderResponse {
	quote := o.Quote()
	return OrderResponse{
		ID:                  o.ID().String(),
		RequesterID:         o.RequesterID().String(),
		CourierID:           optionalID(o.CourierID()),
		PickupAddress:       o.Pickup().Text(),
		PickupCoordinates:   coordinatesOf(o.Pickup().Coordinates()),
		DeliveryAddress:     o.Delivery().Text(),
		DeliveryCoordinates: coordinatesOf(o.Delivery().Coordinates()),
		ItemDescription:     o.Item().Description(),
		ItemWeightKg:        o.Item().WeightKg(),
		DeliveryType:        o.DeliveryType().String(),
		Fee:                 quote.Fee,
		DistanceKm:          quote.DistanceKm,
		Eta:                 Eta(quote.Eta),
		Status:              o.Status().String(),
		PaymentStatus:       o.PaymentStatus().String(),
		PaymentToken:        o.PaymentToken(),
		GatewayOrderID:      o.GatewayOrderID(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
		Version:             o.Version(),
	}
}

func orderViewResponse(v queries.OrderView) OrderResponse {
	return OrderResponse{
		ID:                  v.ID.String(),
		RequesterID:         v.RequesterID.String(),
		CourierID:           optionalID(v.CourierID),
		PickupAddress:       v.PickupAddress,
		PickupCoordinates:   coordinatesOf(v.PickupCoordinates),
		DeliveryAddress:     v.DeliveryAddress,
		DeliveryCoordinates: coordinatesOf(v.DeliveryCoordinates),
		ItemDescription:     v.ItemDescription,
		ItemWeightKg:        v.ItemWeightKg,
		DeliveryType:        v.DeliveryType,
		Fee:                 v.Fee,
		DistanceKm:          v.DistanceKm,
		Eta:                 Eta(v.Eta),
		Status:              v.Status.String(),
		PaymentStatus:       v.PaymentStatus.String(),
		PaymentToken:        v.PaymentToken,
		GatewayOrderID:      v.GatewayOrderID,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
		Version:             v.Version,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type CreatePaymentRequest struct {
	Amount          int64           `json:"amount"`
	CustomerDetails CustomerDetails `json:"customer_details"`
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type PaymentResponse struct {
	Token          string `json:"token"`
	RedirectURL    string `json:"redirect_url"`
	GatewayOrderID string `json:"midtrans_order_id"`
}

// Notification is the Midtrans HTTP notification body.
type Notification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

type TrackingEntryResponse struct {
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PaymentEntryResponse struct {
	ID            string     `json:"id"`
	TransactionID string     `json:"transaction_id"`
	Amount        int64      `json:"amount"`
	Status        string     `json:"status"`
	PaymentTime   *time.Time `json:"payment_time"`
	CreatedAt     time.Time  `json:"created_at"`
}

type OrderPaymentsResponse struct {
	OrderID      string                 `json:"order_id"`
	LatestStatus string                 `json:"latest_status"`
	Payments     []PaymentEntryResponse `json:"payments"`
}

type CourierLocationRequest struct {
	Coordinates Coordinates `json:"coordinates"`
	IsAvailable bool        `json:"is_available"`
}

type AvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

type CourierResponse struct {
	CourierID   string      `json:"courier_id"`
	Coordinates Coordinates `json:"coordinates"`
	IsAvailable bool        `json:"is_available"`
	LastUpdated time.Time   `json:"last_updated"`
}

func courierResponse(c *courier.Courier) CourierResponse {
	loc := c.Location()
	return CourierResponse{
		CourierID:   c.ID().String(),
		Coordinates: Coordinates{Lat: loc.Lat(), Lng: loc.Lng()},
		IsAvailable: c.IsAvailable(),
		LastUpdated: c.LastUpdated(),
	}
}

func courierViewResponse(v queries.CourierView) CourierResponse {
	return CourierResponse{
		CourierID:   v.ID.String(),
		Coordinates: Coordinates{Lat: v.Location.Lat(), Lng: v.Location.Lng()},
		IsAvailable: v.IsAvailable,
		LastUpdated: v.LastUpdated,
	}
}
