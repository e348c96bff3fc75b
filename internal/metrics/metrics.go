package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the process metrics behind a private prometheus
// registry so tests can build isolated instances.
type Registry struct {
	reg *prometheus.Registry

	OrdersPlaced         prometheus.Counter
	OrderConflicts       prometheus.Counter
	InsufficientStock    prometheus.Counter
	NotificationsEmitted prometheus.Counter
	PlaceDuration        prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders placed successfully.",
	})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_stock_conflicts_total",
		Help: "Order placements rejected because a concurrent order took the stock first.",
	})
	insufficient := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_insufficient_stock_total",
		Help: "Order placements rejected during validation for insufficient stock.",
	})
	notified := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_emitted_total",
		Help: "Notifications persisted and published for order and stock events.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_place_duration_seconds",
		Help:    "End-to-end latency of order placement.",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(placed, conflicts, insufficient, notified, duration)
	return &Registry{
		reg:                  r,
		OrdersPlaced:         placed,
		OrderConflicts:       conflicts,
		InsufficientStock:    insufficient,
		NotificationsEmitted: notified,
		PlaceDuration:        duration,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
