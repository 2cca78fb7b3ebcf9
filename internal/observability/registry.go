package observability

import "time"

// MetricsRegistry provides an interface for recording application metrics.
// Handlers depend on it instead of the global Prometheus collectors so tests
// can swap in a no-op implementation.
type MetricsRegistry interface {
	// HTTP request metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)

	// Config decoding metrics
	IncrementDecodeErrors()

	// Share link metrics
	IncrementShareCreated()
	IncrementShareResolved(status string)

	// Preset catalog metrics
	IncrementPresetReloads(status string)
}

// PrometheusRegistry implements MetricsRegistry on the global Prometheus
// collectors.
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementDecodeErrors() {
	DecodeErrorCount.Inc()
}

func (r *PrometheusRegistry) IncrementShareCreated() {
	ShareCreatedCount.Inc()
}

func (r *PrometheusRegistry) IncrementShareResolved(status string) {
	ShareResolvedCount.WithLabelValues(status).Inc()
}

func (r *PrometheusRegistry) IncrementPresetReloads(status string) {
	PresetReloadCount.WithLabelValues(status).Inc()
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (r *NoOpRegistry) IncrementDecodeErrors()                                               {}
func (r *NoOpRegistry) IncrementShareCreated()                                               {}
func (r *NoOpRegistry) IncrementShareResolved(status string)                                 {}
func (r *NoOpRegistry) IncrementPresetReloads(status string)                                 {}
