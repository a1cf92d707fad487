package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"campusdelivery/internal/adapters/out/postgres/orderrepo"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/testkit"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := testkit.StartPostgres(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.TrackingDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_tracking").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderAndTracking() {
	ctx := suite.T().Context()
	tracker := new(MockAggregateTracker)
	repo := orderrepo.NewGormOrderRepository(suite.db, tracker)
	o := testkit.NewOrder(suite.T(), testkit.WithPickupCoordinates(kernel.MustNewCoordinates(-6.36, 106.82)))
	tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(repo.Add(ctx, o))

	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.assertTracking(o.ID(), order.Pending)
	tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsAllFields() {
	ctx := suite.T().Context()
	pickup := kernel.MustNewCoordinates(-6.3628, 106.8269)
	original := testkit.NewWaitingOrder(suite.T(), "ORDER-roundtrip-1", testkit.WithPickupCoordinates(pickup))
	suite.Require().NoError(suite.repository.Add(ctx, original))

	got, err := suite.repository.Get(ctx, original.ID())

	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(original.ID()))
	suite.True(got.RequesterID().IsEqual(original.RequesterID()))
	suite.Equal(order.WaitingPayment, got.Status())
	suite.Equal(order.PaymentPending, got.PaymentStatus())
	suite.Equal(original.Fee(), got.Fee())
	suite.Equal(original.Quote().Eta, got.Quote().Eta)
	suite.Equal("ORDER-roundtrip-1", got.GatewayOrderID())
	suite.Equal(original.PaymentToken(), got.PaymentToken())
	suite.Require().NotNil(got.Pickup().Coordinates())
	suite.InDelta(pickup.Lat(), got.Pickup().Coordinates().Lat(), 1e-9)
	suite.Nil(got.Delivery().Coordinates())
	suite.Equal(original.Item().Description(), got.Item().Description())
	suite.Equal(int64(1), got.Version())
	suite.Nil(got.CourierID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByGatewayOrderID() {
	ctx := suite.T().Context()
	o := testkit.NewWaitingOrder(suite.T(), "ORDER-gw-42")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.GetByGatewayOrderID(ctx, "ORDER-gw-42")
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(o.ID()))

	_, err = suite.repository.GetByGatewayOrderID(ctx, "ORDER-unknown")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersionAndAppendsTracking() {
	ctx := suite.T().Context()
	courierID := kernel.NewUUID()
	o := testkit.NewOrder(suite.T())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.InitiatePayment("tok", "ORDER-upd-1", testkit.Now))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(int64(2), o.Version())

	suite.Require().NoError(o.ApplyPaymentOutcome(order.PaymentPaid, testkit.Now))
	suite.Require().NoError(o.AssignCourier(courierID, testkit.Now))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(int64(3), o.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Matched, got.Status())
	suite.True(got.IsAssignedTo(courierID))
	suite.Equal(int64(3), got.Version())

	suite.assertTracking(o.ID(), order.Pending, order.WaitingPayment, order.SearchingCourier, order.Matched)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsCourierOnCancel() {
	ctx := suite.T().Context()
	o := testkit.NewMatchedOrder(suite.T(), kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	_, err := o.Cancel("no longer needed", testkit.Now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, got.Status())
	suite.Nil(got.CourierID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := suite.T().Context()
	o := testkit.NewOrder(suite.T())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = first.Cancel("", testkit.Now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.InitiatePayment("tok", "ORDER-stale", testkit.Now))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionConflict)
	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, got.Status())
	suite.assertTracking(o.ID(), order.Pending, order.Cancelled)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	o := testkit.NewOrder(suite.T())

	err := suite.repository.Update(suite.T().Context(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllSearching_OldestFirst() {
	ctx := suite.T().Context()
	newer := testkit.NewSearchingOrder(suite.T(), testkit.WithCreatedAt(testkit.Now.Add(time.Hour)))
	older := testkit.NewSearchingOrder(suite.T(), testkit.WithCreatedAt(testkit.Now))
	pending := testkit.NewOrder(suite.T())
	for _, o := range []*order.Order{newer, older, pending} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	got, err := suite.repository.GetAllSearching(ctx, 10)

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.True(got[0].ID().IsEqual(older.ID()))
	suite.True(got[1].ID().IsEqual(newer.ID()))

	limited, err := suite.repository.GetAllSearching(ctx, 1)
	suite.Require().NoError(err)
	suite.Len(limited, 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllPaymentPendingSince() {
	ctx := suite.T().Context()
	waiting := testkit.NewWaitingOrder(suite.T(), "ORDER-exp-1")
	paid := testkit.NewSearchingOrder(suite.T())
	for _, o := range []*order.Order{waiting, paid} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	got, err := suite.repository.GetAllPaymentPendingSince(ctx, testkit.Now.Add(time.Minute), 10)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.True(got[0].ID().IsEqual(waiting.ID()))

	none, err := suite.repository.GetAllPaymentPendingSince(ctx, testkit.Now.Add(-time.Minute), 10)
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertCount(model any, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertTracking(orderID kernel.UUID, expected ...order.Status) {
	var rows []orderrepo.TrackingDTO
	suite.Require().NoError(suite.db.
		Where("order_id = ?", orderID.Google()).
		Order("created_at ASC, status ASC").
		Find(&rows).Error)

	got := make([]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, row.Status)
	}
	want := make([]string, 0, len(expected))
	for _, s := range expected {
		want = append(want, s.String())
	}
	suite.ElementsMatch(want, got)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
