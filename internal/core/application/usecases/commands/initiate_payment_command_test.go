package commands_test

import (
	"errors"
	"strings"
	"testing"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/payment"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var customer = payment.Customer{FirstName: "Sari", Email: "sari@ui.ac.id", Phone: "0812"}

func TestNewInitiatePaymentCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewInitiatePaymentCommand(kernel.SystemPrincipal(), kernel.NewUUID(), 0, payment.Customer{})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestInitiatePaymentCommandHandler_Handle_StoresTokenAfterGateway(t *testing.T) {
	ctx := t.Context()
	requester := kernel.NewUUID()
	listed := testkit.NewOrder(t, testkit.WithRequester(requester))
	loaded := testkit.NewOrder(t, testkit.WithRequester(requester))

	uow := newMockUoW()
	gateway := new(MockPaymentGateway)
	mock.InOrder(
		uow.orders.On("Get", mock.Anything, listed.ID()).Return(listed, nil).Once(),
		gateway.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req ports.TransactionRequest) bool {
			return req.Amount == listed.Fee() && strings.HasPrefix(req.GatewayOrderID, "ORDER-"+listed.ID().String()+"-")
		})).Return(ports.Transaction{Token: "snap-token", RedirectURL: "https://pay/redirect"}, nil).Once(),
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.orders.On("Get", mock.Anything, listed.ID()).Return(loaded, nil).Once(),
		uow.orders.On("Update", mock.Anything, loaded).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
	)
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()

	h := commands.NewInitiatePaymentCommandHandler(orderUoWFactory{mockFactory{uow}}, gateway)
	cmd, err := commands.NewInitiatePaymentCommand(requesterPrincipal(requester), listed.ID(), listed.Fee(), customer)
	require.NoError(t, err)

	session, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "snap-token", session.Token)
	assert.Equal(t, "https://pay/redirect", session.RedirectURL)
	assert.Equal(t, session.GatewayOrderID, loaded.GatewayOrderID())
	assert.Equal(t, order.WaitingPayment, loaded.Status())
	assert.Equal(t, order.PaymentPending, loaded.PaymentStatus())
	assert.Equal(t, "snap-token", loaded.PaymentToken())
	uow.assertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestInitiatePaymentCommandHandler_Handle_GatewayFailureLeavesOrderUntouched(t *testing.T) {
	ctx := t.Context()
	requester := kernel.NewUUID()
	o := testkit.NewOrder(t, testkit.WithRequester(requester))

	uow := newMockUoW()
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	gateway := new(MockPaymentGateway)
	gateway.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(ports.Transaction{}, errors.New("context deadline exceeded")).Once()

	h := commands.NewInitiatePaymentCommandHandler(orderUoWFactory{mockFactory{uow}}, gateway)
	cmd, err := commands.NewInitiatePaymentCommand(requesterPrincipal(requester), o.ID(), o.Fee(), customer)
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrExternalService)
	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, order.PaymentUnpaid, o.PaymentStatus())
	assert.Empty(t, o.PaymentToken())
	uow.AssertNotCalled(t, "Begin", mock.Anything)
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestInitiatePaymentCommandHandler_Handle_RejectsBeforeGateway(t *testing.T) {
	requester := kernel.NewUUID()

	tests := []struct {
		name      string
		order     *order.Order
		principal kernel.Principal
		amount    func(o *order.Order) int64
		target    error
	}{
		{
			name:      "amount differs from fee",
			order:     testkit.NewOrder(t, testkit.WithRequester(requester)),
			principal: requesterPrincipal(requester),
			amount:    func(o *order.Order) int64 { return o.Fee() + 1 },
			target:    errs.ErrValueIsInvalid,
		},
		{
			name:      "not the requester",
			order:     testkit.NewOrder(t),
			principal: requesterPrincipal(requester),
			amount:    func(o *order.Order) int64 { return o.Fee() },
			target:    errs.ErrAccessDenied,
		},
		{
			name:      "already paid",
			order:     testkit.NewSearchingOrder(t, testkit.WithRequester(requester)),
			principal: requesterPrincipal(requester),
			amount:    func(o *order.Order) int64 { return o.Fee() },
			target:    errs.ErrValueIsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := newMockUoW()
			uow.orders.On("Get", mock.Anything, tt.order.ID()).Return(tt.order, nil).Once()
			gateway := new(MockPaymentGateway)

			h := commands.NewInitiatePaymentCommandHandler(orderUoWFactory{mockFactory{uow}}, gateway)
			cmd, err := commands.NewInitiatePaymentCommand(tt.principal, tt.order.ID(), tt.amount(tt.order), customer)
			require.NoError(t, err)

			_, err = h.Handle(t.Context(), cmd)
			require.ErrorIs(t, err, tt.target)
			gateway.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
		})
	}
}

func TestInitiatePaymentCommandHandler_Handle_ConcurrentChangeConflicts(t *testing.T) {
	ctx := t.Context()
	requester := kernel.NewUUID()
	listed := testkit.NewOrder(t, testkit.WithRequester(requester))
	changed := testkit.NewOrder(t, testkit.WithRequester(requester))
	changed.IncrementVersion()

	uow := newMockUoW()
	uow.expectTx(nil)
	uow.orders.On("Get", mock.Anything, listed.ID()).Return(listed, nil).Once()
	uow.orders.On("Get", mock.Anything, listed.ID()).Return(changed, nil).Once()
	gateway := new(MockPaymentGateway)
	gateway.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(ports.Transaction{Token: "t", RedirectURL: "u"}, nil).Once()

	h := commands.NewInitiatePaymentCommandHandler(orderUoWFactory{mockFactory{uow}}, gateway)
	cmd, err := commands.NewInitiatePaymentCommand(requesterPrincipal(requester), listed.ID(), listed.Fee(), customer)
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrVersionConflict)
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
