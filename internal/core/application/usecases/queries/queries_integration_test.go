package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "campusdelivery/internal/adapters/out/postgres"
	"campusdelivery/internal/adapters/out/postgres/courierrepo"
	"campusdelivery/internal/adapters/out/postgres/orderrepo"
	"campusdelivery/internal/adapters/out/postgres/paymentrepo"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/courier"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/payment"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/testkit"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct {
	mock.Mock
}

func (m *mockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository
	couriers  *courierrepo.GormCourierRepository
	payments  *paymentrepo.GormPaymentRepository
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	container, db, err := testkit.StartPostgres(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_tracking, courier_locations, payments").Error,
	)

	tracker := new(mockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.orders = orderrepo.NewGormOrderRepository(suite.db, tracker)
	suite.couriers = courierrepo.NewGormCourierRepository(suite.db, tracker)
	suite.payments = paymentrepo.NewGormPaymentRepository(suite.db)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) principal(id kernel.UUID, role kernel.Role) kernel.Principal {
	p, err := kernel.NewPrincipal(id, role)
	suite.Require().NoError(err)
	return p
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_ReturnsViewToRequester() {
	ctx := suite.T().Context()
	requester := kernel.NewUUID()
	pickup := kernel.MustNewCoordinates(-6.3628, 106.8269)
	o := testkit.NewWaitingOrder(suite.T(), "ORDER-view-1",
		testkit.WithRequester(requester), testkit.WithPickupCoordinates(pickup))
	suite.Require().NoError(suite.orders.Add(ctx, o))

	q, err := queries.NewGetOrderQuery(suite.principal(requester, kernel.RoleRequester), o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.True(view.ID.IsEqual(o.ID()))
	suite.Equal(order.WaitingPayment, view.Status)
	suite.Equal(order.PaymentPending, view.PaymentStatus)
	suite.Equal(int64(22000), view.Fee)
	suite.Equal("ORDER-view-1", view.GatewayOrderID)
	suite.Require().NotNil(view.PickupCoordinates)
	suite.True(view.PickupCoordinates.IsEqual(pickup))
	suite.Nil(view.DeliveryCoordinates)
	suite.Nil(view.CourierID)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_HiddenFromStrangers() {
	ctx := suite.T().Context()
	o := testkit.NewOrder(suite.T())
	suite.Require().NoError(suite.orders.Add(ctx, o))

	q, err := queries.NewGetOrderQuery(suite.principal(kernel.NewUUID(), kernel.RoleRequester), o.ID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, q)

	suite.ErrorIs(err, errs.ErrAccessDenied)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_NotFound() {
	q, err := queries.NewGetOrderQuery(kernel.SystemPrincipal(), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(suite.T().Context(), q)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_NewestFirstAndScoped() {
	ctx := suite.T().Context()
	requester := kernel.NewUUID()
	older := testkit.NewOrder(suite.T(), testkit.WithRequester(requester), testkit.WithCreatedAt(testkit.Now))
	newer := testkit.NewOrder(suite.T(),
		testkit.WithRequester(requester), testkit.WithCreatedAt(testkit.Now.Add(time.Hour)))
	foreign := testkit.NewOrder(suite.T())
	for _, o := range []*order.Order{older, newer, foreign} {
		suite.Require().NoError(suite.orders.Add(ctx, o))
	}

	q, err := queries.NewListOrdersQuery(suite.principal(requester, kernel.RoleRequester), queries.OrderFilter{}, 0)
	suite.Require().NoError(err)

	views, err := queries.NewListOrdersQueryHandler(suite.db).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.True(views[0].ID.IsEqual(newer.ID()))
	suite.True(views[1].ID.IsEqual(older.ID()))
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_CourierBoardAndAssigned() {
	ctx := suite.T().Context()
	courierID := kernel.NewUUID()
	searching := testkit.NewSearchingOrder(suite.T())
	assigned := testkit.NewMatchedOrder(suite.T(), courierID)
	pending := testkit.NewOrder(suite.T())
	for _, o := range []*order.Order{searching, assigned, pending} {
		suite.Require().NoError(suite.orders.Add(ctx, o))
	}
	handler := queries.NewListOrdersQueryHandler(suite.db)
	p := suite.principal(courierID, kernel.RoleCourier)

	status := order.SearchingCourier
	board, err := queries.NewListOrdersQuery(p, queries.OrderFilter{Status: &status}, 10)
	suite.Require().NoError(err)
	views, err := handler.Handle(ctx, board)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.True(views[0].ID.IsEqual(searching.ID()))

	mine, err := queries.NewListOrdersQuery(p, queries.OrderFilter{}, 10)
	suite.Require().NoError(err)
	views, err = handler.Handle(ctx, mine)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.True(views[0].ID.IsEqual(assigned.ID()))
	suite.Require().NotNil(views[0].CourierID)
	suite.True(views[0].CourierID.IsEqual(courierID))
}

func (suite *QueriesIntegrationTestSuite) TestListAvailableCouriers_SkipsUnavailable() {
	ctx := suite.T().Context()
	busy := testkit.NewCourier(suite.T(), false)
	first, err := courier.RestoreCourier(kernel.NewUUID(), kernel.MustNewCoordinates(-6.36, 106.82), true, testkit.Now)
	suite.Require().NoError(err)
	second, err := courier.RestoreCourier(kernel.NewUUID(), kernel.Origin(), true, testkit.Now.Add(time.Minute))
	suite.Require().NoError(err)
	for _, c := range []*courier.Courier{second, busy, first} {
		suite.Require().NoError(suite.couriers.Add(ctx, c))
	}

	views, err := queries.NewListAvailableCouriersQueryHandler(suite.db).
		Handle(ctx, queries.NewListAvailableCouriersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.True(views[0].ID.IsEqual(first.ID()))
	suite.True(views[0].Location.IsEqual(kernel.MustNewCoordinates(-6.36, 106.82)))
	suite.True(views[1].ID.IsEqual(second.ID()))
	suite.True(views[1].IsAvailable)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderTracking_OldestFirst() {
	ctx := suite.T().Context()
	requester := kernel.NewUUID()
	o := testkit.NewOrder(suite.T(), testkit.WithRequester(requester))
	suite.Require().NoError(o.InitiatePayment("snap-track", "ORDER-track", testkit.Now.Add(time.Minute)))
	suite.Require().NoError(o.ApplyPaymentOutcome(order.PaymentPaid, testkit.Now.Add(2*time.Minute)))
	suite.Require().NoError(suite.orders.Add(ctx, o))

	q, err := queries.NewGetOrderTrackingQuery(suite.principal(requester, kernel.RoleRequester), o.ID())
	suite.Require().NoError(err)

	entries, err := queries.NewGetOrderTrackingQueryHandler(suite.db).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)
	suite.Equal(order.Pending, entries[0].Status)
	suite.Equal(order.WaitingPayment, entries[1].Status)
	suite.Equal(order.SearchingCourier, entries[2].Status)
	suite.Equal("payment settled", entries[2].Notes)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderTracking_HiddenFromOtherCouriers() {
	ctx := suite.T().Context()
	o := testkit.NewMatchedOrder(suite.T(), kernel.NewUUID())
	suite.Require().NoError(suite.orders.Add(ctx, o))

	q, err := queries.NewGetOrderTrackingQuery(suite.principal(kernel.NewUUID(), kernel.RoleCourier), o.ID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderTrackingQueryHandler(suite.db).Handle(ctx, q)

	suite.ErrorIs(err, errs.ErrAccessDenied)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderPayments_NewestFirstWithLatestStatus() {
	ctx := suite.T().Context()
	o := testkit.NewWaitingOrder(suite.T(), "ORDER-ledger")
	suite.Require().NoError(suite.orders.Add(ctx, o))

	paidAt := testkit.Now.Add(2 * time.Minute)
	pending, err := payment.NewEntry(o.ID(), "tx-1", o.Fee(), order.PaymentPending, nil, testkit.Now.Add(time.Minute))
	suite.Require().NoError(err)
	paid, err := payment.NewEntry(o.ID(), "tx-1", o.Fee(), order.PaymentPaid, &paidAt, paidAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.payments.Add(ctx, pending))
	suite.Require().NoError(suite.payments.Add(ctx, paid))

	q, err := queries.NewGetOrderPaymentsQuery(kernel.SystemPrincipal(), o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderPaymentsQueryHandler(suite.db).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Equal(order.PaymentPending, view.LatestStatus)
	suite.Require().Len(view.Entries, 2)
	suite.True(view.Entries[0].ID.IsEqual(paid.ID()))
	suite.Require().NotNil(view.Entries[0].PaymentTime)
	suite.True(view.Entries[0].PaymentTime.Equal(paidAt))
	suite.Nil(view.Entries[1].PaymentTime)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderPayments_EmptyLedgerFallsBackToOrder() {
	ctx := suite.T().Context()
	o := testkit.NewWaitingOrder(suite.T(), "ORDER-empty-ledger")
	suite.Require().NoError(suite.orders.Add(ctx, o))

	q, err := queries.NewGetOrderPaymentsQuery(kernel.SystemPrincipal(), o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderPaymentsQueryHandler(suite.db).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Empty(view.Entries)
	suite.Equal(order.PaymentPending, view.LatestStatus)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderPayments_ExpiredOrderOverridesNewestEntry() {
	ctx := suite.T().Context()
	o := testkit.NewWaitingOrder(suite.T(), "ORDER-expired")
	suite.Require().NoError(o.ExpirePayment(testkit.Now.Add(2 * time.Hour)))
	suite.Require().NoError(suite.orders.Add(ctx, o))

	pending, err := payment.NewEntry(o.ID(), "tx-1", o.Fee(), order.PaymentPending, nil, testkit.Now.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.payments.Add(ctx, pending))

	q, err := queries.NewGetOrderPaymentsQuery(kernel.SystemPrincipal(), o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderPaymentsQueryHandler(suite.db).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Equal(order.PaymentExpired, view.LatestStatus)
	suite.Require().Len(view.Entries, 1)
	suite.Equal(order.PaymentPending, view.Entries[0].Status)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderPayments_RetryAfterFailureReportsPending() {
	ctx := suite.T().Context()
	o := testkit.NewWaitingOrder(suite.T(), "ORDER-retry-1")
	suite.Require().NoError(o.ApplyPaymentOutcome(order.PaymentFailed, testkit.Now.Add(time.Minute)))
	suite.Require().NoError(o.InitiatePayment("snap-retry", "ORDER-retry-2", testkit.Now.Add(2*time.Minute)))
	suite.Require().NoError(suite.orders.Add(ctx, o))

	failed, err := payment.NewEntry(o.ID(), "tx-1", o.Fee(), order.PaymentFailed, nil, testkit.Now.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.payments.Add(ctx, failed))

	q, err := queries.NewGetOrderPaymentsQuery(kernel.SystemPrincipal(), o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderPaymentsQueryHandler(suite.db).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Equal(order.PaymentPending, view.LatestStatus)
	suite.Require().Len(view.Entries, 1)
	suite.Equal(order.PaymentFailed, view.Entries[0].Status)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
