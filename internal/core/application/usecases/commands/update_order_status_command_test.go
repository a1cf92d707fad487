package commands_test

import (
	"testing"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUpdateStatusHandler(uow *MockUoW) commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(uowFactory{mockFactory{uow}})
}

func TestNewUpdateOrderStatusCommand_OnlyCourierStepsAndCancel(t *testing.T) {
	for _, status := range []order.Status{order.Pending, order.WaitingPayment, order.SearchingCourier, order.Matched} {
		_, err := commands.NewUpdateOrderStatusCommand(kernel.SystemPrincipal(), kernel.NewUUID(), status, "", nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, status.String())
	}

	zero := int64(0)
	_, err := commands.NewUpdateOrderStatusCommand(kernel.SystemPrincipal(), kernel.NewUUID(), order.PickedUp, "", &zero)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestUpdateOrderStatusCommandHandler_Handle_AssignedCourierAdvances(t *testing.T) {
	courierID := kernel.NewUUID()
	o := testkit.NewMatchedOrder(t, courierID)

	uow := newMockUoW()
	uow.expectTx(nil)
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(courierPrincipal(courierID), o.ID(), order.PickedUp, "picked at kantin", nil)
	require.NoError(t, err)

	updated, err := newUpdateStatusHandler(uow).Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, updated.Status())

	changes := updated.PullStatusChanges()
	require.NotEmpty(t, changes)
	last := changes[len(changes)-1]
	assert.Equal(t, order.PickedUp, last.Status)
	assert.Equal(t, "picked at kantin", last.Notes)
	uow.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_RejectsSkippedStep(t *testing.T) {
	courierID := kernel.NewUUID()
	o := testkit.NewMatchedOrder(t, courierID)

	uow := newMockUoW()
	uow.expectTx(nil)
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(courierPrincipal(courierID), o.ID(), order.Delivered, "", nil)
	require.NoError(t, err)

	_, err = newUpdateStatusHandler(uow).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.Matched, o.Status())
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_OtherCourierDenied(t *testing.T) {
	o := testkit.NewMatchedOrder(t, kernel.NewUUID())

	uow := newMockUoW()
	uow.expectTx(nil)
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(courierPrincipal(kernel.NewUUID()), o.ID(), order.PickedUp, "", nil)
	require.NoError(t, err)

	_, err = newUpdateStatusHandler(uow).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrAccessDenied)
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelReleasesCourier(t *testing.T) {
	requester := kernel.NewUUID()
	c := testkit.NewCourier(t, false)
	o := testkit.NewMatchedOrder(t, c.ID(), testkit.WithRequester(requester))

	uow := newMockUoW()
	uow.expectTx(nil)
	mock.InOrder(
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.couriers.On("GetForUpdate", mock.Anything, c.ID()).Return(c, nil).Once(),
		uow.couriers.On("Update", mock.Anything, c).Return(nil).Once(),
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once(),
	)

	cmd, err := commands.NewUpdateOrderStatusCommand(requesterPrincipal(requester), o.ID(), order.Cancelled, "changed my mind", nil)
	require.NoError(t, err)

	cancelled, err := newUpdateStatusHandler(uow).Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.Nil(t, cancelled.CourierID())
	assert.True(t, c.IsAvailable())
	uow.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelWithoutCourier(t *testing.T) {
	requester := kernel.NewUUID()
	o := testkit.NewWaitingOrder(t, "ORDER-c", testkit.WithRequester(requester))

	uow := newMockUoW()
	uow.expectTx(nil)
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(requesterPrincipal(requester), o.ID(), order.Cancelled, "", nil)
	require.NoError(t, err)

	_, err = newUpdateStatusHandler(uow).Handle(t.Context(), cmd)
	require.NoError(t, err)
	uow.couriers.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_StaleVersionConflicts(t *testing.T) {
	courierID := kernel.NewUUID()
	o := testkit.NewMatchedOrder(t, courierID)

	uow := newMockUoW()
	uow.expectTx(nil)
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	stale := o.Version() + 1
	cmd, err := commands.NewUpdateOrderStatusCommand(courierPrincipal(courierID), o.ID(), order.PickedUp, "", &stale)
	require.NoError(t, err)

	_, err = newUpdateStatusHandler(uow).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrVersionConflict)
	assert.Equal(t, order.Matched, o.Status())
}

func TestUpdateOrderStatusCommandHandler_Handle_TerminalOrdersStayClosed(t *testing.T) {
	requester := kernel.NewUUID()
	o := testkit.NewOrder(t, testkit.WithRequester(requester))
	_, err := o.Cancel("", testkit.Now)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTx(nil)
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(requesterPrincipal(requester), o.ID(), order.Cancelled, "", nil)
	require.NoError(t, err)

	_, err = newUpdateStatusHandler(uow).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
