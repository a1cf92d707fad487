package order_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

var testQuote = order.Quote{DistanceKm: 1.2, Fee: 13400, Eta: order.Eta{MinMinutes: 37, MaxMinutes: 52}}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	pickupCoords := kernel.MustNewCoordinates(-6.3628, 106.8269)
	pickup, err := order.NewAddress("pickup_address", "Kantin FT", &pickupCoords)
	require.NoError(t, err)
	delivery, err := order.NewAddress("delivery_address", "Asrama UI Blok C", nil)
	require.NoError(t, err)
	item, err := order.NewItem("2 nasi goreng", 1.5)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), pickup, delivery, item, order.Standard, testQuote, now)
	require.NoError(t, err)
	return o
}

func paidOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newTestOrder(t)
	require.NoError(t, o.InitiatePayment("snap-token", "ORDER-1-1", now))
	require.NoError(t, o.ApplyPaymentOutcome(order.PaymentPaid, now))
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts pending and unpaid", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentUnpaid, o.PaymentStatus())
		assert.Nil(t, o.CourierID())
		assert.Equal(t, int64(13400), o.Fee())
		assert.Equal(t, int64(1), o.Version())
		assert.Equal(t, "Kantin FT", o.Pickup().Text())
		assert.NotNil(t, o.Pickup().Coordinates())
		assert.Nil(t, o.Delivery().Coordinates())

		changes := o.PullStatusChanges()
		require.Len(t, changes, 1)
		assert.Equal(t, order.Pending, changes[0].Status)
		assert.Empty(t, o.PullStatusChanges())
	})

	t.Run("collects every validation error", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, order.Address{}, order.Address{}, order.Item{},
			order.DeliveryType("drone"), order.Quote{}, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order_id")
		assert.Contains(t, err.Error(), "requester_id")
		assert.Contains(t, err.Error(), "pickup_address")
		assert.Contains(t, err.Error(), "delivery_type")
		assert.Contains(t, err.Error(), "fee")
	})

	t.Run("address and item are required", func(t *testing.T) {
		_, err := order.NewAddress("pickup_address", "   ", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewItem("books", 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.NewItem("", 1)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_InitiatePayment(t *testing.T) {
	t.Run("moves pending to waiting_payment", func(t *testing.T) {
		o := newTestOrder(t)
		o.PullStatusChanges()

		require.NoError(t, o.InitiatePayment("tok-1", "ORDER-x-1", now))

		assert.Equal(t, order.WaitingPayment, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, "tok-1", o.PaymentToken())
		assert.Equal(t, "ORDER-x-1", o.GatewayOrderID())
		require.NotNil(t, o.PaymentRequestedAt())
		require.Len(t, o.PullStatusChanges(), 1)
	})

	t.Run("retry replaces token without a new tracking entry", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.InitiatePayment("tok-1", "ORDER-x-1", now))
		o.PullStatusChanges()

		require.NoError(t, o.InitiatePayment("tok-2", "ORDER-x-2", now.Add(time.Minute)))

		assert.Equal(t, "tok-2", o.PaymentToken())
		assert.Equal(t, "ORDER-x-2", o.GatewayOrderID())
		assert.Empty(t, o.PullStatusChanges())
	})

	t.Run("rejected once paid", func(t *testing.T) {
		o := paidOrder(t)
		err := o.InitiatePayment("tok-3", "ORDER-x-3", now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("token is required", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.InitiatePayment("", "ORDER-x-1", now), errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_ApplyPaymentOutcome(t *testing.T) {
	t.Run("paid advances to searching_courier", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.InitiatePayment("tok", "gw", now))
		o.PullStatusChanges()

		require.NoError(t, o.ApplyPaymentOutcome(order.PaymentPaid, now))

		assert.Equal(t, order.SearchingCourier, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		changes := o.PullStatusChanges()
		require.Len(t, changes, 1)
		assert.Equal(t, order.SearchingCourier, changes[0].Status)
	})

	t.Run("failure keeps the order waiting", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.InitiatePayment("tok", "gw", now))

		require.NoError(t, o.ApplyPaymentOutcome(order.PaymentFailed, now))

		assert.Equal(t, order.WaitingPayment, o.Status())
		assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
	})

	t.Run("late failure after paid is ignored", func(t *testing.T) {
		o := paidOrder(t)

		err := o.ApplyPaymentOutcome(order.PaymentFailed, now)

		require.ErrorIs(t, err, order.ErrPaymentAlreadySettled)
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Equal(t, order.SearchingCourier, o.Status())
	})

	t.Run("duplicate paid is a no-op", func(t *testing.T) {
		o := paidOrder(t)
		o.PullStatusChanges()

		require.NoError(t, o.ApplyPaymentOutcome(order.PaymentPaid, now))
		assert.Empty(t, o.PullStatusChanges())
	})

	t.Run("paid after cancellation leaves order cancelled", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.InitiatePayment("tok", "gw", now))
		_, err := o.Cancel("changed my mind", now)
		require.NoError(t, err)

		require.NoError(t, o.ApplyPaymentOutcome(order.PaymentPaid, now))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	})

	t.Run("requires an initiated payment", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.ApplyPaymentOutcome(order.PaymentPaid, now), errs.ErrValueIsInvalid)
	})

	t.Run("unpaid is not a gateway outcome", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.InitiatePayment("tok", "gw", now))
		require.ErrorIs(t, o.ApplyPaymentOutcome(order.PaymentUnpaid, now), errs.ErrValueIsInvalid)
	})
}

func TestOrder_ExpirePayment(t *testing.T) {
	o := newTestOrder(t)
	require.Error(t, o.ExpirePayment(now))

	require.NoError(t, o.InitiatePayment("tok", "gw", now))
	require.NoError(t, o.ExpirePayment(now.Add(time.Hour)))

	assert.Equal(t, order.PaymentExpired, o.PaymentStatus())
	assert.Equal(t, order.WaitingPayment, o.Status())

	// a fresh attempt is still possible
	require.NoError(t, o.InitiatePayment("tok-2", "gw-2", now.Add(2*time.Hour)))
	assert.Equal(t, order.PaymentPending, o.PaymentStatus())
}

func TestOrder_AssignCourier(t *testing.T) {
	t.Run("searching order gets matched", func(t *testing.T) {
		o := paidOrder(t)
		courierID := kernel.NewUUID()

		require.NoError(t, o.AssignCourier(courierID, now))

		assert.Equal(t, order.Matched, o.Status())
		require.NotNil(t, o.CourierID())
		assert.True(t, o.IsAssignedTo(courierID))
	})

	t.Run("only searching orders can be matched", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.AssignCourier(kernel.NewUUID(), now), errs.ErrValueIsInvalid)
		assert.Nil(t, o.CourierID())
	})

	t.Run("second assignment is rejected", func(t *testing.T) {
		o := paidOrder(t)
		first := kernel.NewUUID()
		require.NoError(t, o.AssignCourier(first, now))

		require.Error(t, o.AssignCourier(kernel.NewUUID(), now))
		assert.True(t, o.IsAssignedTo(first))
	})
}

func TestOrder_Advance(t *testing.T) {
	o := paidOrder(t)
	require.NoError(t, o.AssignCourier(kernel.NewUUID(), now))

	require.ErrorIs(t, o.Advance(order.Delivered, "", now), errs.ErrValueIsInvalid)
	require.NoError(t, o.Advance(order.PickedUp, "got the food", now))
	require.NoError(t, o.Advance(order.OnDelivery, "", now))
	require.NoError(t, o.Advance(order.Delivered, "left at the door", now))

	assert.Equal(t, order.Delivered, o.Status())
	assert.NotNil(t, o.CourierID())
	require.Error(t, o.Advance(order.Delivered, "", now))

	_, err := o.Cancel("", now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("returns the released courier", func(t *testing.T) {
		o := paidOrder(t)
		courierID := kernel.NewUUID()
		require.NoError(t, o.AssignCourier(courierID, now))
		require.NoError(t, o.Advance(order.PickedUp, "", now))

		released, err := o.Cancel("requester unreachable", now)

		require.NoError(t, err)
		require.NotNil(t, released)
		assert.True(t, released.IsEqual(courierID))
		assert.Nil(t, o.CourierID())
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("without courier releases nothing", func(t *testing.T) {
		o := newTestOrder(t)
		released, err := o.Cancel("", now)
		require.NoError(t, err)
		assert.Nil(t, released)
	})
}

func TestOrder_ExpectVersion(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.ExpectVersion(1))

	o.IncrementVersion()
	err := o.ExpectVersion(1)
	require.ErrorIs(t, err, errs.ErrVersionConflict)
}

func TestRestoreOrder(t *testing.T) {
	o := newTestOrder(t)
	courierID := kernel.NewUUID()
	snapshot := order.Snapshot{
		ID:            o.ID(),
		RequesterID:   o.RequesterID(),
		Pickup:        o.Pickup(),
		Delivery:      o.Delivery(),
		Item:          o.Item(),
		DeliveryType:  o.DeliveryType(),
		Quote:         o.Quote(),
		Status:        order.Matched,
		PaymentStatus: order.PaymentPaid,
		CourierID:     &courierID,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       7,
	}

	restored, err := order.RestoreOrder(snapshot)
	require.NoError(t, err)
	assert.Equal(t, int64(7), restored.Version())
	assert.True(t, restored.IsAssignedTo(courierID))
	assert.Empty(t, restored.PullStatusChanges())

	snapshot.CourierID = nil
	_, err = order.RestoreOrder(snapshot)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

// Drives orders through random operation sequences and checks that a courier
// is attached exactly in the courier-bearing statuses.
func TestOrder_CourierInvariantHoldsUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	outcomes := []order.PaymentStatus{order.PaymentPending, order.PaymentPaid, order.PaymentFailed, order.PaymentExpired}
	targets := order.AllStatuses()

	for run := 0; run < 200; run++ {
		o := newTestOrder(t)
		for step := 0; step < 25; step++ {
			var err error
			switch rng.Intn(6) {
			case 0:
				err = o.InitiatePayment("tok", "gw", now)
			case 1:
				err = o.ApplyPaymentOutcome(outcomes[rng.Intn(len(outcomes))], now)
			case 2:
				err = o.AssignCourier(kernel.NewUUID(), now)
			case 3:
				err = o.Advance(targets[rng.Intn(len(targets))], "", now)
			case 4:
				_, err = o.Cancel("", now)
			case 5:
				err = o.ExpirePayment(now)
			}
			if err != nil && !errors.Is(err, errs.ErrValueIsInvalid) &&
				!errors.Is(err, order.ErrPaymentAlreadySettled) {
				t.Fatalf("run %d step %d: unexpected error kind: %v", run, step, err)
			}

			require.NoError(t, o.Status().ValidateCanHaveCourier(o.CourierID() != nil),
				"run %d step %d status %s", run, step, o.Status())
			if o.PaymentStatus() == order.PaymentPaid {
				assert.NotEqual(t, order.WaitingPayment, o.Status())
				assert.NotEqual(t, order.Pending, o.Status())
			}
		}
	}
}
