package api

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pubtools/gptsampler/internal/codegen"
	"github.com/pubtools/gptsampler/internal/middleware"
	"github.com/pubtools/gptsampler/internal/share"
)

var tracer = otel.Tracer("gptsampler")

// SampleResponse is the body returned by the generation endpoint. State is
// the base64url encoding of the config, ready for a URL fragment.
type SampleResponse struct {
	Kind  string `json:"kind"`
	Code  string `json:"code"`
	State string `json:"state"`
}

// GenerateHandler handles POST /api/sample: config JSON in, generated sample
// out. The kind query parameter selects script-only or full-document output.
func (s *Server) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "GenerateHandler",
		trace.WithAttributes(
			attribute.String("http.method", "POST"),
			attribute.String("http.route", "/api/sample"),
		))
	defer span.End()

	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "sample"
	const method = "POST"

	cfg, err := s.decodeSampleConfig(w, r)
	if err != nil {
		logger.Error("decode request", zap.Error(err))
		s.Metrics.IncrementRequests(endpoint, method, "400")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	kind := codegen.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = codegen.KindScript
	}
	if !kind.Valid() {
		s.Metrics.IncrementRequests(endpoint, method, "400")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "kind must be \"script\" or \"document\"", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("sample.kind", string(kind)))

	code, err := s.Generator.Generate(cfg, kind)
	if err != nil {
		logger.Warn("rejected config", zap.Error(err))
		s.Metrics.IncrementRequests(endpoint, method, "422")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	state, err := share.Encode(cfg)
	if err != nil {
		logger.Error("encode state", zap.Error(err))
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, SampleResponse{
		Kind:  string(kind),
		Code:  code,
		State: state,
	})
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}

// ValidationResponse reports the outcome of a validation request.
type ValidationResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidateHandler handles POST /api/validate: config validation without
// generating any code.
func (s *Server) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "validate"
	const method = "POST"

	cfg, err := s.decodeSampleConfig(w, r)
	if err != nil {
		s.Metrics.IncrementRequests(endpoint, method, "400")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := cfg.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{Valid: false, Error: err.Error()})
		s.Metrics.IncrementRequests(endpoint, method, "422")
	} else {
		writeJSON(w, http.StatusOK, ValidationResponse{Valid: true})
		s.Metrics.IncrementRequests(endpoint, method, "200")
	}
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}

// DecodeConfigHandler handles GET /api/config?state=: it decodes a shared
// state string back into config JSON for the UI.
func (s *Server) DecodeConfigHandler(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "config"
	const method = "GET"

	state := r.URL.Query().Get("state")
	if state == "" {
		s.Metrics.IncrementRequests(endpoint, method, "400")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "state parameter required", http.StatusBadRequest)
		return
	}

	cfg, err := share.Decode(state)
	if err != nil {
		logger.Debug("malformed state", zap.Error(err))
		s.Metrics.IncrementDecodeErrors()
		s.Metrics.IncrementRequests(endpoint, method, "400")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "malformed state", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
