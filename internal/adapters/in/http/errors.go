package http

import (
	"errors"
	"log/slog"
	"net/http"

	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, services.ErrNoCouriersAvailable):
		return http.StatusConflict
	case errors.Is(err, errs.ErrExternalService):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// fail writes err as an Error body. Internal errors are logged and their
// text is not sent to the client.
func (s *Server) fail(c echo.Context, err error) error {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			slog.String("route", c.Path()),
			slog.String("error", err.Error()))
		message = http.StatusText(status)
	}
	return c.JSON(status, Error{Code: status, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
