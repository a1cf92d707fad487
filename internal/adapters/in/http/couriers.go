package http

import (
	"net/http"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListAvailableCouriers godoc
//
//	@Summary	Couriers that can take an order
//	@Tags		couriers
//	@Produce	json
//	@Success	200	{array}	CourierResponse
//	@Router		/couriers/available [get]
func (s *Server) ListAvailableCouriers(c echo.Context) error {
	views, err := s.h.ListAvailableCouriers.Handle(c.Request().Context(), queries.NewListAvailableCouriersQuery())
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]CourierResponse, len(views))
	for i, v := range views {
		response[i] = courierViewResponse(v)
	}
	return c.JSON(http.StatusOK, response)
}

// ReportCourierLocation godoc
//
//	@Summary	Report position and availability (last write wins)
//	@Tags		couriers
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"courier id"	format(uuid)
//	@Param		body	body		CourierLocationRequest	true	"report"
//	@Success	200		{object}	CourierResponse
//	@Failure	400		{object}	Error
//	@Failure	403		{object}	Error
//	@Router		/couriers/{id}/location [put]
func (s *Server) ReportCourierLocation(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req CourierLocationRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	coords, err := kernel.NewCoordinates(req.Coordinates.Lat, req.Coordinates.Lng)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReportCourierLocationCommand(principalFrom(c), id, coords, req.IsAvailable)
	if err != nil {
		return s.fail(c, err)
	}

	courier, err := s.h.ReportCourierLocation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, courierResponse(courier))
}

// SetCourierAvailability godoc
//
//	@Summary	Toggle whether a courier takes new orders
//	@Tags		couriers
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"courier id"	format(uuid)
//	@Param		body	body		AvailabilityRequest	true	"availability"
//	@Success	200		{object}	CourierResponse
//	@Failure	404		{object}	Error
//	@Router		/couriers/{id}/availability [put]
func (s *Server) SetCourierAvailability(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req AvailabilityRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(principalFrom(c), id, req.IsAvailable)
	if err != nil {
		return s.fail(c, err)
	}

	courier, err := s.h.SetCourierAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, courierResponse(courier))
}
