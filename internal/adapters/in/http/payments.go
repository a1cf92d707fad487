package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/payment"

	"github.com/labstack/echo/v4"
)

const maxNotificationBytes = 64 << 10

// CreatePayment godoc
//
//	@Summary	Start a hosted checkout for an order
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"order id"	format(uuid)
//	@Param		body	body		CreatePaymentRequest	true	"amount and customer"
//	@Success	201		{object}	PaymentResponse
//	@Failure	400		{object}	Error
//	@Failure	404		{object}	Error
//	@Failure	502		{object}	Error
//	@Router		/orders/{id}/payment [post]
func (s *Server) CreatePayment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req CreatePaymentRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewInitiatePaymentCommand(principalFrom(c), id, req.Amount, payment.Customer{
		FirstName: req.CustomerDetails.FirstName,
		LastName:  req.CustomerDetails.LastName,
		Email:     req.CustomerDetails.Email,
		Phone:     req.CustomerDetails.Phone,
	})
	if err != nil {
		return s.fail(c, err)
	}

	session, err := s.h.InitiatePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, PaymentResponse{
		Token:          session.Token,
		RedirectURL:    session.RedirectURL,
		GatewayOrderID: session.GatewayOrderID,
	})
}

// GetOrderPayments godoc
//
//	@Summary	Payment ledger of an order, newest first
//	@Tags		payments
//	@Produce	json
//	@Param		id	path		string	true	"order id"	format(uuid)
//	@Success	200	{object}	OrderPaymentsResponse
//	@Failure	404	{object}	Error
//	@Router		/orders/{id}/payments [get]
func (s *Server) GetOrderPayments(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	q, err := queries.NewGetOrderPaymentsQuery(principalFrom(c), id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.GetOrderPayments.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}

	response := OrderPaymentsResponse{
		OrderID:      view.OrderID.String(),
		LatestStatus: view.LatestStatus.String(),
		Payments:     make([]PaymentEntryResponse, len(view.Entries)),
	}
	for i, e := range view.Entries {
		response.Payments[i] = PaymentEntryResponse{
			ID:            e.ID.String(),
			TransactionID: e.TransactionID,
			Amount:        e.Amount,
			Status:        e.Status.String(),
			PaymentTime:   e.PaymentTime,
			CreatedAt:     e.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// PaymentWebhook godoc
//
//	@Summary		Midtrans payment notification
//	@Description	Acknowledged with 200 whatever the reconciliation outcome, so the gateway stops retrying.
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			body	body		Notification	true	"notification"
//	@Success		200		{object}	map[string]bool
//	@Failure		400		{object}	Error
//	@Failure		401		{object}	Error
//	@Router			/payments/webhook [post]
func (s *Server) PaymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxNotificationBytes))
	if err != nil {
		return badRequest(c, "unreadable body")
	}
	var n Notification
	if err = json.Unmarshal(raw, &n); err != nil {
		return badRequest(c, "invalid notification")
	}

	if s.verifier != nil && !s.verifier.Verify(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey) {
		s.logger.WarnContext(ctx, "payment notification with bad signature",
			slog.String("gateway_order_id", n.OrderID))
		return unauthorized(c, "invalid signature")
	}

	cmd, err := commands.NewReconcilePaymentCommand(n.OrderID, n.TransactionID, n.TransactionStatus, n.FraudStatus)
	if err != nil {
		s.logger.WarnContext(ctx, "malformed payment notification",
			slog.String("gateway_order_id", n.OrderID),
			slog.String("error", err.Error()))
		return acknowledge(c)
	}

	result, err := s.h.ReconcilePayment.Handle(ctx, cmd)
	if err != nil {
		s.logger.ErrorContext(ctx, "payment reconciliation failed",
			slog.String("gateway_order_id", n.OrderID),
			slog.String("error", err.Error()))
		return acknowledge(c)
	}

	s.logger.InfoContext(ctx, "payment notification handled",
		slog.String("gateway_order_id", n.OrderID),
		slog.String("result", string(result)))
	return acknowledge(c)
}

func acknowledge(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
