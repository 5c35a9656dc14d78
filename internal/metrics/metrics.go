package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Registry holds every storefront collector. It is separate from the
// default registerer so tests and the admin endpoint see only these series.
var Registry = prometheus.NewRegistry()

var (
	CartMutations = newCounter("cart", "mutations_total",
		"Cart mutations persisted to the snapshot store")
	PriceFallbacks = newCounter("cart", "price_fallbacks_total",
		"Quantity updates that kept the previous unit price after a tier lookup failure")
	OrdersSubmitted = newCounter("checkout", "orders_submitted_total",
		"Orders promoted to pending")
	OrdersIncomplete = newCounter("checkout", "orders_incomplete_total",
		"Submissions that stopped with the order left in draft")
	StockClamped = newCounter("checkout", "stock_clamped_total",
		"Stock decrements floored at zero")

	SubmitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "checkout",
		Name:      "submit_duration_seconds",
		Help:      "Time spent in a successful order submission",
		Buckets:   prometheus.DefBuckets,
	})
)

func init() {
	Registry.MustRegister(
		CartMutations,
		PriceFallbacks,
		OrdersSubmitted,
		OrdersIncomplete,
		StockClamped,
		SubmitDuration,
	)
}

func newCounter(subsystem, name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
