package http

import (
	"net/http"
	"strconv"
	"strings"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Quote godoc
//
//	@Summary	Price a delivery before creating the order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		body	body		QuoteRequest	true	"route and item"
//	@Success	200		{object}	QuoteResponse
//	@Failure	400		{object}	Error
//	@Router		/quotes [post]
func (s *Server) Quote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	pickup, err := req.PickupCoordinates.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	delivery, err := req.DeliveryCoordinates.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	q, err := queries.NewQuoteQuery(pickup, delivery, req.ItemWeightKg, req.DeliveryType)
	if err != nil {
		return s.fail(c, err)
	}

	quote, err := s.h.Quote.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, QuoteResponse{DistanceKm: quote.DistanceKm, Fee: quote.Fee, Eta: Eta(quote.Eta)})
}

// CreateOrder godoc
//
//	@Summary	Create an order; the fee is computed and frozen server-side
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		body	body		CreateOrderRequest	true	"order"
//	@Success	201		{object}	OrderResponse
//	@Failure	400		{object}	Error
//	@Failure	403		{object}	Error
//	@Router		/orders [post]
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	p := principalFrom(c)
	requesterID := p.ID()
	if req.RequesterID != "" {
		id, err := kernel.ParseUUID("requester_id", req.RequesterID)
		if err != nil {
			return s.fail(c, err)
		}
		requesterID = id
	}

	cmd, err := buildCreateOrderCommand(p, requesterID, req)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, orderResponse(o))
}

func buildCreateOrderCommand(
	p kernel.Principal,
	requesterID kernel.UUID,
	req CreateOrderRequest,
) (commands.CreateOrderCommand, error) {
	pickupCoords, err := req.PickupCoordinates.toDomain()
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	deliveryCoords, err := req.DeliveryCoordinates.toDomain()
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	pickup, err := order.NewAddress("pickup_address", req.PickupAddress, pickupCoords)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	delivery, err := order.NewAddress("delivery_address", req.DeliveryAddress, deliveryCoords)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	item, err := order.NewItem(req.ItemDescription, req.ItemWeightKg)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	deliveryType := order.Standard
	if req.DeliveryType != "" {
		if deliveryType, err = order.ParseDeliveryType(req.DeliveryType); err != nil {
			return commands.CreateOrderCommand{}, err
		}
	}

	return commands.NewCreateOrderCommand(p, requesterID, pickup, delivery, item, deliveryType)
}

// GetOrder godoc
//
//	@Summary	Read one order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"order id"	format(uuid)
//	@Success	200	{object}	OrderResponse
//	@Failure	403	{object}	Error
//	@Failure	404	{object}	Error
//	@Router		/orders/{id} [get]
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	q, err := queries.NewGetOrderQuery(principalFrom(c), id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.GetOrder.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderViewResponse(view))
}

// ListOrders godoc
//
//	@Summary	List orders visible to the caller, newest first
//	@Tags		orders
//	@Produce	json
//	@Param		requester_id	query		string	false	"requester filter"	format(uuid)
//	@Param		courier_id		query		string	false	"courier filter"	format(uuid)
//	@Param		status			query		string	false	"status filter"
//	@Param		limit			query		int		false	"page size"
//	@Success	200				{array}		OrderResponse
//	@Failure	400				{object}	Error
//	@Router		/orders [get]
func (s *Server) ListOrders(c echo.Context) error {
	var (
		filter queries.OrderFilter
		limit  int
	)

	if v := c.QueryParam("requester_id"); v != "" {
		id, err := kernel.ParseUUID("requester_id", v)
		if err != nil {
			return s.fail(c, err)
		}
		filter.RequesterID = &id
	}
	if v := c.QueryParam("courier_id"); v != "" {
		id, err := kernel.ParseUUID("courier_id", v)
		if err != nil {
			return s.fail(c, err)
		}
		filter.CourierID = &id
	}
	if v := c.QueryParam("status"); v != "" {
		status, err := order.ParseStatus(v)
		if err != nil {
			return s.fail(c, err)
		}
		filter.Status = &status
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("limit", err))
		}
		limit = n
	}

	q, err := queries.NewListOrdersQuery(principalFrom(c), filter, limit)
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.h.ListOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]OrderResponse, len(views))
	for i, v := range views {
		response[i] = orderViewResponse(v)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrderTracking godoc
//
//	@Summary	Status history of an order, oldest first
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"order id"	format(uuid)
//	@Success	200	{array}		TrackingEntryResponse
//	@Failure	404	{object}	Error
//	@Router		/orders/{id}/tracking [get]
func (s *Server) GetOrderTracking(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	q, err := queries.NewGetOrderTrackingQuery(principalFrom(c), id)
	if err != nil {
		return s.fail(c, err)
	}

	entries, err := s.h.GetOrderTracking.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]TrackingEntryResponse, len(entries))
	for i, e := range entries {
		response[i] = TrackingEntryResponse{Status: e.Status.String(), Notes: e.Notes, CreatedAt: e.CreatedAt}
	}
	return c.JSON(http.StatusOK, response)
}

// MatchOrder godoc
//
//	@Summary	Assign an available courier to a searching order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"order id"	format(uuid)
//	@Success	200	{object}	OrderResponse
//	@Failure	400	{object}	Error
//	@Failure	409	{object}	Error	"no couriers available"
//	@Router		/orders/{id}/match [post]
func (s *Server) MatchOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewMatchOrderCommand(principalFrom(c), id)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.MatchOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(o))
}

// AcceptOrder godoc
//
//	@Summary	Claim a searching order as the calling courier
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"order id"	format(uuid)
//	@Success	200	{object}	OrderResponse
//	@Failure	400	{object}	Error
//	@Failure	403	{object}	Error
//	@Router		/orders/{id}/accept [post]
func (s *Server) AcceptOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(principalFrom(c), id)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.AcceptOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(o))
}

// UpdateOrderStatus godoc
//
//	@Summary	Advance a matched order or cancel it
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string				true	"order id"	format(uuid)
//	@Param		If-Match	header		string				false	"expected order version"
//	@Param		body		body		UpdateStatusRequest	true	"target status"
//	@Success	200			{object}	OrderResponse
//	@Failure	400			{object}	Error
//	@Failure	409			{object}	Error
//	@Router		/orders/{id}/status [patch]
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req UpdateStatusRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(c, err)
	}

	var expected *int64
	if v := strings.Trim(c.Request().Header.Get("If-Match"), `" `); v != "" {
		n, parseErr := strconv.ParseInt(v, 10, 64)
		if parseErr != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("If-Match", parseErr))
		}
		expected = &n
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(principalFrom(c), id, status, req.Notes, expected)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	c.Response().Header().Set("ETag", strconv.FormatInt(o.Version(), 10))
	return c.JSON(http.StatusOK, orderResponse(o))
}
