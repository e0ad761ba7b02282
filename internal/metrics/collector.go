package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recommendation and chat answer sources
const (
	SourceRemote   = "remote"
	SourceFallback = "fallback"
)

// Collector handles metrics collection and reporting
type Collector struct {
	registry *prometheus.Registry
	metrics  map[string]prometheus.Collector
}

// NewCollector creates a new metrics collector on its own registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	ordersPlaced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders accepted by the API",
		},
	)

	statusTransitions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Order status transitions applied by the scheduler",
		},
		[]string{"status"},
	)

	answers := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_answers_total",
			Help: "Recommendation and chat answers by source",
		},
		[]string{"operation", "source"},
	)

	inferenceDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inference_request_duration_seconds",
			Help:    "Latency of remote inference calls",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
		},
		[]string{"operation", "outcome"},
	)

	metrics := map[string]prometheus.Collector{
		"orders_placed":      ordersPlaced,
		"status_transitions": statusTransitions,
		"answers":            answers,
		"inference_duration": inferenceDuration,
	}

	for _, metric := range metrics {
		registry.MustRegister(metric)
	}

	return &Collector{
		registry: registry,
		metrics:  metrics,
	}
}

// Handler exposes the collector's registry in the Prometheus text format
func (mc *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(mc.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (mc *Collector) Registry() *prometheus.Registry {
	return mc.registry
}

// RecordOrderPlaced counts a newly created order
func (mc *Collector) RecordOrderPlaced() {
	if counter, ok := mc.metrics["orders_placed"].(prometheus.Counter); ok {
		counter.Inc()
	}
}

// RecordStatusTransition counts a status write made by the scheduler
func (mc *Collector) RecordStatusTransition(status string) {
	if counter, ok := mc.metrics["status_transitions"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues(status).Inc()
	}
}

// RecordAnswer counts where a recommendation or chat answer came from
func (mc *Collector) RecordAnswer(operation, source string) {
	if counter, ok := mc.metrics["answers"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues(operation, source).Inc()
	}
}

// RecordInference observes the latency of one remote call
func (mc *Collector) RecordInference(operation string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if histogram, ok := mc.metrics["inference_duration"].(*prometheus.HistogramVec); ok {
		histogram.WithLabelValues(operation, outcome).Observe(elapsed.Seconds())
	}
}
