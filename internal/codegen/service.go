package codegen

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/pubtools/gptsampler/internal/models"
)

// Kind selects the output variant of a generation request.
type Kind string

const (
	// KindScript emits only the JavaScript tag code.
	KindScript Kind = "script"
	// KindDocument emits a complete HTML page around the tag code.
	KindDocument Kind = "document"
)

// Valid reports whether the kind is a supported output variant.
func (k Kind) Valid() bool {
	return k == KindScript || k == KindDocument
}

// Service wraps the pure generator functions with validation, structured
// logging and metrics. Handlers and the MCP server go through it rather than
// calling the fragment functions directly.
type Service struct {
	logger *zap.Logger

	sampleCounter    *prometheus.CounterVec
	generateDuration prometheus.Histogram
	sampleBytes      prometheus.Histogram
}

// NewService creates a generation service registered on the global
// Prometheus registry.
func NewService(logger *zap.Logger) *Service {
	return newService(logger, promauto.With(prometheus.DefaultRegisterer))
}

// NewServiceForTesting creates a generation service with an isolated metrics
// registry so tests do not collide on metric registration.
func NewServiceForTesting(logger *zap.Logger) *Service {
	return newService(logger, promauto.With(prometheus.NewRegistry()))
}

func newService(logger *zap.Logger, factory promauto.Factory) *Service {
	return &Service{
		logger: logger.Named("codegen"),
		sampleCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gptsampler_samples_generated_total",
				Help: "Total samples generated, by output kind",
			},
			[]string{"kind"},
		),
		generateDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gptsampler_generate_duration_seconds",
				Help:    "Time taken to generate one sample",
				Buckets: prometheus.DefBuckets,
			},
		),
		sampleBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gptsampler_sample_bytes",
				Help:    "Size distribution of generated samples",
				Buckets: prometheus.ExponentialBuckets(256, 2, 10),
			},
		),
	}
}

// Generate validates the config and renders the requested output variant.
func (s *Service) Generate(cfg *models.SampleConfig, kind Kind) (string, error) {
	start := time.Now()
	defer func() {
		s.generateDuration.Observe(time.Since(start).Seconds())
	}()

	if !kind.Valid() {
		return "", fmt.Errorf("unknown sample kind %q", kind)
	}
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid config: %w", err)
	}

	var out string
	switch kind {
	case KindScript:
		out = Script(cfg)
	case KindDocument:
		out = Document(cfg)
	}

	s.sampleCounter.WithLabelValues(string(kind)).Inc()
	s.sampleBytes.Observe(float64(len(out)))
	s.logger.Debug("generated sample",
		zap.String("kind", string(kind)),
		zap.Int("slots", len(cfg.Slots)),
		zap.Int("bytes", len(out)))

	return out, nil
}
