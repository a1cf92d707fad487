package testkit

import (
	"testing"
	"time"

	"campusdelivery/internal/core/domain/model/account"
	"campusdelivery/internal/core/domain/model/courier"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var Now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// OrderOption tweaks the order built by NewOrder.
type OrderOption func(*orderParams)

type orderParams struct {
	requesterID  kernel.UUID
	pickupCoords *kernel.Coordinates
	deliveryType order.DeliveryType
	fee          int64
	createdAt    time.Time
}

func WithRequester(id kernel.UUID) OrderOption {
	return func(s *orderParams) { s.requesterID = id }
}

func WithPickupCoordinates(c kernel.Coordinates) OrderOption {
	return func(s *orderParams) { s.pickupCoords = &c }
}

func WithFee(fee int64) OrderOption {
	return func(s *orderParams) { s.fee = fee }
}

func WithCreatedAt(at time.Time) OrderOption {
	return func(s *orderParams) { s.createdAt = at }
}

// NewOrder builds a pending order.
func NewOrder(t testing.TB, opts ...OrderOption) *order.Order {
	t.Helper()

	params := orderParams{
		requesterID:  kernel.NewUUID(),
		deliveryType: order.Standard,
		fee:          22000,
		createdAt:    Now,
	}
	for _, opt := range opts {
		opt(&params)
	}

	pickup, err := order.NewAddress("pickup_address", "Kantin Teknik", params.pickupCoords)
	require.NoError(t, err)
	delivery, err := order.NewAddress("delivery_address", "Asrama Blok C", nil)
	require.NoError(t, err)
	item, err := order.NewItem("2x nasi goreng", 2)
	require.NoError(t, err)
	quote := order.Quote{DistanceKm: 5, Fee: params.fee, Eta: order.Eta{MinMinutes: 55, MaxMinutes: 70}}

	o, err := order.NewOrder(kernel.NewUUID(), params.requesterID, pickup, delivery, item, params.deliveryType, quote, params.createdAt)
	require.NoError(t, err)
	return o
}

// NewWaitingOrder builds an order with an initiated payment.
func NewWaitingOrder(t testing.TB, gatewayOrderID string, opts ...OrderOption) *order.Order {
	t.Helper()
	o := NewOrder(t, opts...)
	require.NoError(t, o.InitiatePayment("snap-"+gatewayOrderID, gatewayOrderID, Now))
	return o
}

// NewSearchingOrder builds a paid order waiting for a courier.
func NewSearchingOrder(t testing.TB, opts ...OrderOption) *order.Order {
	t.Helper()
	o := NewWaitingOrder(t, "ORDER-"+kernel.NewUUID().String(), opts...)
	require.NoError(t, o.ApplyPaymentOutcome(order.PaymentPaid, Now))
	return o
}

// NewMatchedOrder builds an order assigned to courierID.
func NewMatchedOrder(t testing.TB, courierID kernel.UUID, opts ...OrderOption) *order.Order {
	t.Helper()
	o := NewSearchingOrder(t, opts...)
	require.NoError(t, o.AssignCourier(courierID, Now))
	return o
}

func NewCourier(t testing.TB, available bool) *courier.Courier {
	t.Helper()
	c, err := courier.RestoreCourier(kernel.NewUUID(), kernel.MustNewCoordinates(-6.3628, 106.8269), available, Now)
	require.NoError(t, err)
	return c
}

func NewProfile(t testing.TB, id kernel.UUID, email string, role kernel.Role) *account.Profile {
	t.Helper()
	p, err := account.NewProfile(id, email, "Test User", "081200000000", role, Now)
	require.NoError(t, err)
	return p
}
