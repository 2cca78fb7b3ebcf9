package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/pubtools/gptsampler/internal/codegen"
	"github.com/pubtools/gptsampler/internal/config"
	"github.com/pubtools/gptsampler/internal/db"
	"github.com/pubtools/gptsampler/internal/models"
	"github.com/pubtools/gptsampler/internal/observability"
	"github.com/pubtools/gptsampler/internal/presets"
	"github.com/pubtools/gptsampler/internal/ui"
)

// Server groups dependencies for HTTP handlers. Store may be nil when
// sharing is disabled; every other field is required.
type Server struct {
	Logger    *zap.Logger
	Store     *db.RedisStore
	Presets   *presets.Store
	Generator *codegen.Service
	Renderer  *ui.Renderer
	Metrics   observability.MetricsRegistry
	Config    config.Config
}

// NewServer constructs a Server.
func NewServer(logger *zap.Logger, store *db.RedisStore, presetStore *presets.Store, generator *codegen.Service, renderer *ui.Renderer, metrics observability.MetricsRegistry, cfg config.Config) *Server {
	return &Server{
		Logger:    logger,
		Store:     store,
		Presets:   presetStore,
		Generator: generator,
		Renderer:  renderer,
		Metrics:   metrics,
		Config:    cfg,
	}
}

// decodeSampleConfig reads and unmarshals a config from the request body,
// bounded by the configured body limit.
func (s *Server) decodeSampleConfig(w http.ResponseWriter, r *http.Request) (*models.SampleConfig, error) {
	limit := int64(s.Config.MaxBodyBytes)
	if limit <= 0 {
		limit = 64 * 1024
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	defer func() {
		_ = r.Body.Close()
	}()

	var cfg models.SampleConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return &cfg, nil
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
