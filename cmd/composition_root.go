package cmd

import (
	"errors"
	"log/slog"

	httpin "campusdelivery/internal/adapters/in/http"
	"campusdelivery/internal/adapters/out/identity"
	"campusdelivery/internal/adapters/out/kafka"
	"campusdelivery/internal/adapters/out/midtrans"
	"campusdelivery/internal/adapters/out/postgres"
	"campusdelivery/internal/adapters/out/redis"
	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/jobs"

	"gorm.io/gorm"
)

const (
	matchBatchSize  = 50
	expiryBatchSize = 100
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory

	estimator  services.FeeEstimator
	dispatcher services.OrderDispatcher

	gateway  ports.PaymentGateway
	verifier midtrans.SignatureVerifier
	identity ports.IdentityProvider
	dedup    ports.WebhookDeduplicator

	closers []func() error
}

// NewCompositionRoot builds the adapters described by cfg. Kafka and Redis
// are optional: without KAFKA_HOST committed changes are not published, and
// without REDIS_ADDR webhooks are not deduplicated.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	policy, err := services.ParseMatchingPolicy(cfg.MatchingPolicy)
	if err != nil {
		return nil, err
	}

	gateway, err := midtrans.NewSnapClient(cfg.MidtransBaseURL, cfg.MidtransServerKey, cfg.MidtransTimeout())
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		estimator:  services.NewFeeEstimator(),
		dispatcher: services.NewOrderDispatcher(policy),
		gateway:    gateway,
		verifier:   midtrans.NewSignatureVerifier(cfg.MidtransServerKey, cfg.MidtransVerifySignature),
		identity:   identity.NewClient(cfg.IdentityBaseURL, cfg.IdentityServiceKey),
	}

	var publisher ports.OrderEventPublisher
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		p := kafka.NewOrderEventPublisher(brokers, cfg.KafkaOrderChangedTopic)
		publisher = p
		root.closers = append(root.closers, p.Close)
	}
	root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)

	if cfg.RedisAddr != "" {
		d := redis.NewWebhookDeduplicator(cfg.RedisAddr, cfg.WebhookDedupTTL())
		root.dedup = d
		root.closers = append(root.closers, d.Close)
	}

	return root, nil
}

func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sharedUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) accountUoWFactory() commands.AccountUoWFactory {
	return FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterAccountCommandHandler() commands.RegisterAccountCommandHandler {
	return commands.NewRegisterAccountCommandHandler(c.accountUoWFactory(), c.identity, c.logger)
}

func (c *CompositionRoot) CreateAuthenticateCommandHandler() commands.AuthenticateCommandHandler {
	return commands.NewAuthenticateCommandHandler(c.accountUoWFactory(), c.identity)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.estimator)
}

func (c *CompositionRoot) CreateInitiatePaymentCommandHandler() commands.InitiatePaymentCommandHandler {
	return commands.NewInitiatePaymentCommandHandler(c.orderUoWFactory(), c.gateway)
}

func (c *CompositionRoot) CreateMatchOrderCommandHandler() commands.MatchOrderCommandHandler {
	return commands.NewMatchOrderCommandHandler(c.sharedUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateMatchSearchingOrdersCommandHandler() commands.MatchSearchingOrdersCommandHandler {
	return commands.NewMatchSearchingOrdersCommandHandler(c.orderUoWFactory(), c.CreateMatchOrderCommandHandler())
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.sharedUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.sharedUoWFactory())
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() commands.ReconcilePaymentCommandHandler {
	return commands.NewReconcilePaymentCommandHandler(
		c.paymentUoWFactory(),
		c.dedup,
		c.CreateMatchOrderCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateExpirePendingPaymentsCommandHandler() commands.ExpirePendingPaymentsCommandHandler {
	return commands.NewExpirePendingPaymentsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateReportCourierLocationCommandHandler() commands.ReportCourierLocationCommandHandler {
	return commands.NewReportCourierLocationCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	return commands.NewSetCourierAvailabilityCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderPaymentsQueryHandler() queries.GetOrderPaymentsQueryHandler {
	return queries.NewGetOrderPaymentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailableCouriersQueryHandler() queries.ListAvailableCouriersQueryHandler {
	return queries.NewListAvailableCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateQuoteQueryHandler() queries.QuoteQueryHandler {
	return queries.NewQuoteQueryHandler(c.estimator)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	h := httpin.Handlers{
		RegisterAccount: c.CreateRegisterAccountCommandHandler(),
		Authenticate:    c.CreateAuthenticateCommandHandler(),

		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		InitiatePayment:   c.CreateInitiatePaymentCommandHandler(),
		MatchOrder:        c.CreateMatchOrderCommandHandler(),
		AcceptOrder:       c.CreateAcceptOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		ReconcilePayment:  c.CreateReconcilePaymentCommandHandler(),

		ReportCourierLocation:  c.CreateReportCourierLocationCommandHandler(),
		SetCourierAvailability: c.CreateSetCourierAvailabilityCommandHandler(),

		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		GetOrderTracking:      c.CreateGetOrderTrackingQueryHandler(),
		GetOrderPayments:      c.CreateGetOrderPaymentsQueryHandler(),
		ListAvailableCouriers: c.CreateListAvailableCouriersQueryHandler(),
		Quote:                 c.CreateQuoteQueryHandler(),
	}
	return httpin.NewServer(h, c.verifier, c.logger)
}

func (c *CompositionRoot) CreateAuthenticator() httpin.Authenticator {
	return httpin.NewAuthenticator(c.cfg.JWTSecret)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOrderMatchingJob(
			c.CreateMatchSearchingOrdersCommandHandler(),
			c.cfg.AutoMatchSchedule,
			matchBatchSize,
			c.logger,
		),
		jobs.NewPaymentExpiryJob(
			c.CreateExpirePendingPaymentsCommandHandler(),
			c.cfg.PaymentExpirySchedule,
			c.cfg.PaymentExpiry(),
			expiryBatchSize,
			c.logger,
		),
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}
