package api

import (
	"net/http"
	"time"
)

// PresetsHandler handles GET /api/presets: it serves the size and format
// catalog the configurator offers.
func (s *Server) PresetsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "presets"
	const method = "GET"

	writeJSON(w, http.StatusOK, s.Presets.Catalog())

	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
