package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gptsampler_requests_total",
			Help: "Total API requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gptsampler_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// state strings that failed to decode
	DecodeErrorCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gptsampler_decode_errors_total",
			Help: "Total malformed config states rejected",
		},
	)

	// short links created
	ShareCreatedCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gptsampler_shares_created_total",
			Help: "Total share links created",
		},
	)

	// short link lookups, labelled by outcome
	ShareResolvedCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gptsampler_shares_resolved_total",
			Help: "Total share link lookups",
		},
		[]string{"status"},
	)

	// preset catalog reloads, labelled by outcome
	PresetReloadCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gptsampler_preset_reloads_total",
			Help: "Total preset catalog reloads",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		DecodeErrorCount,
		ShareCreatedCount,
		ShareResolvedCount,
		PresetReloadCount,
	)
}
