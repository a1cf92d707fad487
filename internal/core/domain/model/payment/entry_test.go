package payment_test

import (
	"strings"
	"testing"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/payment"
	"campusdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	orderID := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		e, err := payment.NewEntry(orderID, "tx-1", 13400, order.PaymentPaid, &now, now)

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.True(t, e.OrderID().IsEqual(orderID))
		assert.Equal(t, int64(13400), e.Amount())
		assert.Equal(t, order.PaymentPaid, e.Status())
		assert.Equal(t, &now, e.PaymentTime())
	})

	t.Run("collects errors", func(t *testing.T) {
		_, err := payment.NewEntry(kernel.UUID{}, "", 0, order.PaymentUnknown, nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewGatewayOrderID(t *testing.T) {
	orderID := kernel.NewUUID()
	at := time.UnixMilli(1741597200123)

	id := payment.NewGatewayOrderID(orderID, at)

	assert.Equal(t, "ORDER-"+orderID.String()+"-1741597200123", id)
	assert.True(t, strings.HasPrefix(id, "ORDER-"))
	assert.NotEqual(t, id, payment.NewGatewayOrderID(orderID, at.Add(time.Millisecond)))
}

func TestCustomer_Validate(t *testing.T) {
	require.NoError(t, payment.Customer{FirstName: "Budi", Email: "budi@ui.ac.id"}.Validate())

	err := payment.Customer{Email: "nope"}.Validate()
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
