package commands_test

import (
	"context"
	"time"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/account"
	"campusdelivery/internal/core/domain/model/courier"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/payment"
	"campusdelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*order.Order, error) {
	args := m.Called(ctx, gatewayOrderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetAllSearching(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetAllPaymentPendingSince(
	ctx context.Context,
	before time.Time,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, before, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

func (m *MockCourierRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

func (m *MockCourierRepository) GetAllAvailable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	couriers, _ := args.Get(0).([]*courier.Courier)
	return couriers, args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, e *payment.Entry) error {
	return m.Called(ctx, e).Error(0)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, p *account.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*account.Profile)
	return p, args.Error(1)
}

// MockUoW satisfies every unit of work interface the handlers use.
type MockUoW struct {
	mock.Mock
	orders   *MockOrderRepository
	couriers *MockCourierRepository
	payments *MockPaymentRepository
	accounts *MockAccountRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:   new(MockOrderRepository),
		couriers: new(MockCourierRepository),
		payments: new(MockPaymentRepository),
		accounts: new(MockAccountRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.orders
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	return m.couriers
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	return m.payments
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	return m.accounts
}

// expectTx registers a transaction that commits with commitErr. Rollback is
// always deferred by handlers and may run after a commit.
func (m *MockUoW) expectTx(commitErr error) {
	m.On("Begin", mock.Anything).Return(nil).Once()
	m.On("Commit", mock.Anything).Return(commitErr).Maybe()
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
}

func (m *MockUoW) assertExpectations(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.couriers.AssertExpectations(t)
	m.payments.AssertExpectations(t)
	m.accounts.AssertExpectations(t)
}

// mockFactory hands out the same unit of work for every Create call and
// implements every factory interface.
type mockFactory struct {
	uow *MockUoW
}

type (
	uowFactory        struct{ mockFactory }
	orderUoWFactory   struct{ mockFactory }
	courierUoWFactory struct{ mockFactory }
	paymentUoWFactory struct{ mockFactory }
	accountUoWFactory struct{ mockFactory }
)

func (f uowFactory) Create() commands.UoW               { return f.uow }
func (f orderUoWFactory) Create() commands.OrderUoW     { return f.uow }
func (f courierUoWFactory) Create() commands.CourierUoW { return f.uow }
func (f paymentUoWFactory) Create() commands.PaymentUoW { return f.uow }
func (f accountUoWFactory) Create() commands.AccountUoW { return f.uow }

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateTransaction(
	ctx context.Context,
	req ports.TransactionRequest,
) (ports.Transaction, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.Transaction), args.Error(1)
}

type MockIdentityProvider struct{ mock.Mock }

func (m *MockIdentityProvider) CreateAccount(
	ctx context.Context,
	credentials ports.Credentials,
	role kernel.Role,
) (kernel.UUID, error) {
	args := m.Called(ctx, credentials, role)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockIdentityProvider) DeleteAccount(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIdentityProvider) Authenticate(ctx context.Context, credentials ports.Credentials) (ports.Session, error) {
	args := m.Called(ctx, credentials)
	return args.Get(0).(ports.Session), args.Error(1)
}

type MockDeduplicator struct{ mock.Mock }

func (m *MockDeduplicator) MarkProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeduplicator) Forget(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockOrderMatcher struct{ mock.Mock }

func (m *MockOrderMatcher) Handle(ctx context.Context, cmd commands.MatchOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func requesterPrincipal(id kernel.UUID) kernel.Principal {
	p, err := kernel.NewPrincipal(id, kernel.RoleRequester)
	if err != nil {
		panic(err)
	}
	return p
}

func courierPrincipal(id kernel.UUID) kernel.Principal {
	p, err := kernel.NewPrincipal(id, kernel.RoleCourier)
	if err != nil {
		panic(err)
	}
	return p
}
