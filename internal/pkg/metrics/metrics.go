// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	OrderStatusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Order status changes persisted, by target status",
		},
		[]string{"status"},
	)

	MatchAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_attempts_total",
			Help: "Courier matching attempts by result",
		},
		[]string{"result"},
	)

	WebhooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_webhooks_total",
			Help: "Payment gateway notifications by handling result",
		},
		[]string{"result"},
	)

	PaymentGatewayDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "payment_gateway_request_duration_seconds",
			Help:    "Duration of payment gateway transaction requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	OrderEventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_published_total",
			Help: "OrderChanged events handed to the broker by result",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			OrderStatusTransitionsTotal,
			MatchAttemptsTotal,
			WebhooksTotal,
			PaymentGatewayDuration,
			OrderEventsPublishedTotal,
		)
	})
}
