package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Commerce holds the instruments for order flow and notification delivery.
type Commerce struct {
	OrdersCreated     prometheus.Counter
	OrdersFailed      prometheus.Counter
	StatusTransitions *prometheus.CounterVec
	Notifications     *prometheus.CounterVec
	NotificationsDead prometheus.Counter
	NotificationQueue prometheus.Gauge
}

func NewCommerce(reg prometheus.Registerer) *Commerce {
	m := &Commerce{
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "orders_created_total",
			Help:      "Orders successfully persisted.",
		}),
		OrdersFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "orders_failed_total",
			Help:      "Order creation attempts that aborted.",
		}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "order_status_transitions_total",
			Help:      "Order status changes by target status.",
		}, []string{"status"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "notifications_total",
			Help:      "Notification delivery attempts by outcome.",
		}, []string{"outcome"}),
		NotificationsDead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "notifications_dead_lettered_total",
			Help:      "Notifications dropped after exhausting retries.",
		}),
		NotificationQueue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storefront",
			Name:      "notification_queue_depth",
			Help:      "Envelopes waiting for a delivery worker.",
		}),
	}
	reg.MustRegister(
		m.OrdersCreated, m.OrdersFailed, m.StatusTransitions,
		m.Notifications, m.NotificationsDead, m.NotificationQueue,
	)
	return m
}

// Server holds HTTP-level instruments.
type Server struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServer(reg prometheus.Registerer) *Server {
	m := &Server{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storefront",
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
	}
	reg.MustRegister(m.Requests, m.LatencyMS)
	return m
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
