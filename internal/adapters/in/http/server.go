package http

import (
	"context"
	"log/slog"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/courier"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
)

// handler is the shape shared by every command and query handler.
type handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	RegisterAccount handler[commands.RegisterAccountCommand, kernel.Principal]
	Authenticate    handler[commands.AuthenticateCommand, commands.AuthenticationResult]

	CreateOrder       handler[commands.CreateOrderCommand, *order.Order]
	InitiatePayment   handler[commands.InitiatePaymentCommand, commands.PaymentSession]
	MatchOrder        handler[commands.MatchOrderCommand, *order.Order]
	AcceptOrder       handler[commands.AcceptOrderCommand, *order.Order]
	UpdateOrderStatus handler[commands.UpdateOrderStatusCommand, *order.Order]
	ReconcilePayment  handler[commands.ReconcilePaymentCommand, commands.ReconcileResult]

	ReportCourierLocation  handler[commands.ReportCourierLocationCommand, *courier.Courier]
	SetCourierAvailability handler[commands.SetCourierAvailabilityCommand, *courier.Courier]

	GetOrder              handler[queries.GetOrderQuery, queries.OrderView]
	ListOrders            handler[queries.ListOrdersQuery, []queries.OrderView]
	GetOrderTracking      handler[queries.GetOrderTrackingQuery, []queries.TrackingEntryView]
	GetOrderPayments      handler[queries.GetOrderPaymentsQuery, queries.OrderPaymentsView]
	ListAvailableCouriers handler[queries.ListAvailableCouriersQuery, []queries.CourierView]
	Quote                 handler[queries.QuoteQuery, order.Quote]
}

// SignatureVerifier checks payment notification signatures.
type SignatureVerifier interface {
	Verify(orderID, statusCode, grossAmount, signature string) bool
}

// Server adapts HTTP requests to the application use cases.
type Server struct {
	h        Handlers
	verifier SignatureVerifier
	logger   *slog.Logger
}

func NewServer(h Handlers, verifier SignatureVerifier, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		h:        h,
		verifier: verifier,
		logger:   logger.With("component", "http"),
	}
}
