package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/pubtools/gptsampler/internal/db"
	"github.com/pubtools/gptsampler/internal/middleware"
	"github.com/pubtools/gptsampler/internal/share"
)

// ShareResponse is the body returned when a share link is created.
type ShareResponse struct {
	ID    string `json:"id"`
	State string `json:"state"`
	URL   string `json:"url"`
}

// CreateShareHandler handles POST /api/share: it validates the config,
// stores its encoded state under a fresh short ID and returns the link.
func (s *Server) CreateShareHandler(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "share"
	const method = "POST"

	if s.Store == nil {
		s.Metrics.IncrementRequests(endpoint, method, "503")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "sharing is disabled", http.StatusServiceUnavailable)
		return
	}

	cfg, err := s.decodeSampleConfig(w, r)
	if err != nil {
		logger.Error("decode request", zap.Error(err))
		s.Metrics.IncrementRequests(endpoint, method, "400")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := cfg.Validate(); err != nil {
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

	id, err := db.NewShareID()
	if err != nil {
		logger.Error("new share id", zap.Error(err))
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := s.Store.SaveShare(id, state, s.Config.ShareTTL); err != nil {
		logger.Error("save share", zap.String("id", id), zap.Error(err))
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	logger.Info("share created", zap.String("id", id), zap.Int("slots", len(cfg.Slots)))
	s.Metrics.IncrementShareCreated()

	writeJSON(w, http.StatusCreated, ShareResponse{
		ID:    id,
		State: state,
		URL:   s.Config.BaseURL + "/s/" + id,
	})
	s.Metrics.IncrementRequests(endpoint, method, "201")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}

// ResolveShareHandler handles GET /s/{id}: it redirects to the configurator
// with the stored state in the URL fragment.
func (s *Server) ResolveShareHandler(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "resolve"
	const method = "GET"

	if s.Store == nil {
		s.Metrics.IncrementRequests(endpoint, method, "503")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "sharing is disabled", http.StatusServiceUnavailable)
		return
	}

	id := mux.Vars(r)["id"]
	state, err := s.Store.GetShare(id)
	if errors.Is(err, db.ErrShareNotFound) {
		s.Metrics.IncrementShareResolved("miss")
		s.Metrics.IncrementRequests(endpoint, method, "404")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "share link not found or expired", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("get share", zap.String("id", id), zap.Error(err))
		s.Metrics.IncrementShareResolved("error")
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Metrics.IncrementShareResolved("hit")
	s.Metrics.IncrementRequests(endpoint, method, "302")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
	http.Redirect(w, r, "/#"+state, http.StatusFound)
}
