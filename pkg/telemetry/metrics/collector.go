package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"quillhq/scribe/pkg/config"
)

// Collector owns the Prometheus registry and the metric families the
// proxy records. All metrics share the configured namespace.
//
// Families:
//   - <ns>_requests_total{tool,status}: completed tool requests
//   - <ns>_request_duration_seconds{tool}: end-to-end request latency
//   - <ns>_upstream_tokens_total{tool,type}: tokens reported by the provider
//   - <ns>_upstream_errors_total{kind}: upstream failures by classification
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	upstreamTokens  *prometheus.CounterVec
	upstreamErrors  *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry, so test
// instances never collide on duplicate registration.
func NewCollector(cfg *config.MetricsConfig) *Collector {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "scribe"
	}

	buckets := cfg.RequestDurationBuckets
	if len(buckets) == 0 {
		// LLM completions routinely take seconds; stretch the default
		// bucket range accordingly.
		buckets = []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0}
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of tool requests processed",
			},
			[]string{"tool", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "End-to-end duration of tool requests in seconds",
				Buckets:   buckets,
			},
			[]string{"tool"},
		),

		upstreamTokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_tokens_total",
				Help:      "Tokens reported by the upstream provider",
			},
			[]string{"tool", "type"},
		),

		upstreamErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_errors_total",
				Help:      "Upstream failures by classification",
			},
			[]string{"kind"},
		),
	}

	c.registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.upstreamTokens,
		c.upstreamErrors,
	)

	return c
}

// RecordRequest records one completed tool request. Status is the HTTP
// status code returned to the client, stringified by the caller.
func (c *Collector) RecordRequest(tool, status string, duration time.Duration) {
	c.requestsTotal.WithLabelValues(tool, status).Inc()
	c.requestDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordTokens records the provider's token usage for a successful
// completion. Zero counts are skipped.
func (c *Collector) RecordTokens(tool string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		c.upstreamTokens.WithLabelValues(tool, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		c.upstreamTokens.WithLabelValues(tool, "completion").Add(float64(completionTokens))
	}
}

// RecordUpstreamError records an upstream failure by classification
// ("auth", "rate_limit", "timeout", "parse", "empty", "upstream").
func (c *Collector) RecordUpstreamError(kind string) {
	c.upstreamErrors.WithLabelValues(kind).Inc()
}

// Registry exposes the underlying registry for gathering in tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
