package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	_ "campusdelivery/internal/adapters/in/http/docs"
	"campusdelivery/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the API under /api/v1 plus
// /health, /metrics and /swagger.
//
//	@title			Campus Delivery API
//	@version		1.0
//	@description	Orders, courier matching and payment settlement for campus food delivery.
//	@BasePath		/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func NewRouter(s *Server, auth Authenticator) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger))
	e.Use(requestMetrics())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)
	api.POST("/payments/webhook", s.PaymentWebhook)

	secured := api.Group("", auth.Middleware())
	secured.POST("/quotes", s.Quote)
	secured.POST("/orders", s.CreateOrder)
	secured.GET("/orders", s.ListOrders)
	secured.GET("/orders/:id", s.GetOrder)
	secured.GET("/orders/:id/tracking", s.GetOrderTracking)
	secured.GET("/orders/:id/payments", s.GetOrderPayments)
	secured.POST("/orders/:id/payment", s.CreatePayment)
	secured.POST("/orders/:id/match", s.MatchOrder)
	secured.POST("/orders/:id/accept", s.AcceptOrder)
	secured.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	secured.GET("/couriers/available", s.ListAvailableCouriers)
	secured.PUT("/couriers/:id/location", s.ReportCourierLocation)
	secured.PUT("/couriers/:id/availability", s.SetCourierAvailability)

	return e
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				logger.LogAttrs(c.Request().Context(), slog.LevelError, "request", attrs...)
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	})
}

func requestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			metrics.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(started).Seconds())
			return err
		}
	}
}
