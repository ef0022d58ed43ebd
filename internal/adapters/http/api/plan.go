// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/types"
)

// PlanDependencies defines the interface for plan lookups.
type PlanDependencies interface {
	Plans(ctx context.Context) []model.Plan
}

// PlanHandler handles benefit plan lookups.
type PlanHandler struct {
	deps PlanDependencies
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(deps PlanDependencies) *PlanHandler {
	return &PlanHandler{deps: deps}
}

// HandleListPlans handles GET /plans requests.
func (h *PlanHandler) HandleListPlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	plans := h.deps.Plans(r.Context())
	out := make([]types.Plan, 0, len(plans))
	for _, p := range plans {
		out = append(out, types.Plan{ID: p.ID, Name: p.Name, Details: p.Details})
	}
	writeJSON(w, http.StatusOK, out)
}
