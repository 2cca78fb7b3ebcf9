package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pubtools/gptsampler/internal/middleware"
	"github.com/pubtools/gptsampler/internal/ui"
)

// IndexHandler handles GET /: it renders the configurator page with the
// active preset catalog.
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "index"
	const method = "GET"

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.Renderer.RenderIndex(w, ui.PageData{
		Title:   "GPT Sample Builder",
		BaseURL: s.Config.BaseURL,
		Catalog: s.Presets.Catalog(),
	})
	if err != nil {
		// Headers are already written; all we can do is log.
		logger.Error("render index", zap.Error(err))
		s.Metrics.IncrementRequests(endpoint, method, "500")
	} else {
		s.Metrics.IncrementRequests(endpoint, method, "200")
	}
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
