package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pubtools/gptsampler/internal/middleware"
)

// ReloadHandler handles POST /reload: it re-reads the preset catalog file.
func (s *Server) ReloadHandler(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "reload"
	const method = "POST"

	if err := s.Presets.Reload(); err != nil {
		logger.Error("preset reload failed", zap.Error(err))
		s.Metrics.IncrementPresetReloads("error")
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "reload failed", http.StatusInternalServerError)
		return
	}

	s.Metrics.IncrementPresetReloads("ok")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"reloaded"}`))

	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
