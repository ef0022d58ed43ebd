// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/app"
)

// StatsProvider supplies the operational snapshot served at /stats.
type StatsProvider interface {
	GetStats() app.Stats
}

// StatsHandler serves store sizes and gate settings for the admin console.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a stats handler around the given provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.provider.GetStats())
}
