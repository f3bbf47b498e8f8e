// Package metrics exposes Prometheus collectors shared by the bot runtime and
// a small HTTP server for /metrics and /healthz.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "bot"

var (
	registry = prometheus.NewRegistry()

	updates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "updates_total",
		Help:      "Telegram updates received, by kind.",
	}, []string{"kind"})

	handled = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "handler_duration_seconds",
		Help:      "Handler latency, by handler and outcome.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"handler", "outcome"})

	sendFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "send_failures_total",
		Help:      "Outbound Telegram calls that failed after retries, by error kind.",
	}, []string{"kind"})

	rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Updates dropped by the per-user rate limiter.",
	})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		updates,
		handled,
		sendFailures,
		rateLimited,
	)
}

// Registry returns the registry served on /metrics.
func Registry() *prometheus.Registry {
	return registry
}

// MustRegister adds application collectors to the shared registry.
func MustRegister(cs ...prometheus.Collector) {
	registry.MustRegister(cs...)
}

// ObserveUpdate counts an inbound update of the given kind.
func ObserveUpdate(kind string) {
	updates.WithLabelValues(kind).Inc()
}

// ObserveHandler records a handler run.
func ObserveHandler(handler, outcome string, took time.Duration) {
	handled.WithLabelValues(handler, outcome).Observe(took.Seconds())
}

// ObserveSendFailure counts an outbound call that gave up.
func ObserveSendFailure(kind string) {
	sendFailures.WithLabelValues(kind).Inc()
}

// ObserveRateLimited counts an update dropped by the rate limiter.
func ObserveRateLimited() {
	rateLimited.Inc()
}
