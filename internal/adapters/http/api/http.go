// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/app"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
)

// Upload mirrors the service-layer upload descriptor.
type Upload = app.Upload

// ApplyResult mirrors the service-layer per-operation outcome.
type ApplyResult = app.ApplyResult

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ProcessFile reconciles one uploaded roster file into a change-set.
	ProcessFile(ctx context.Context, up Upload) (model.ChangeSet, error)

	// ApplyChangeSet applies approved operations, one result per operation.
	ApplyChangeSet(ctx context.Context, records []model.ChangeRecord) []ApplyResult

	// Read operations expose reference data.
	Companies(ctx context.Context) []model.Company
	Company(ctx context.Context, id int) (model.Company, []model.Employee, error)
	Plans(ctx context.Context) []model.Plan
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	companyHandler   *CompanyHandler
	planHandler      *PlanHandler
	reconcileHandler *ReconcileHandler
	bulkHandler      *BulkHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		companyHandler:   NewCompanyHandler(deps),
		planHandler:      NewPlanHandler(deps),
		reconcileHandler: NewReconcileHandler(deps),
		bulkHandler:      NewBulkHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/plans", MetricsMiddleware(s.planHandler.HandleListPlans, "plans"))
	mux.HandleFunc("/user/bulk", MetricsMiddleware(s.bulkHandler.HandleBulk, "bulk"))
	mux.HandleFunc("/company", MetricsMiddleware(s.companyHandler.HandleListCompanies, "companies"))
	mux.HandleFunc("/company/", MetricsMiddleware(s.handleCompanySubtree, "company"))
}

// handleCompanySubtree dispatches /company/{id} and /company/{id}/reconcile.
func (s *Server) handleCompanySubtree(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/reconcile") {
		s.reconcileHandler.HandleReconcile(w, r)
		return
	}
	s.companyHandler.HandleGetCompany(w, r)
}

// companyIDFromPath extracts the numeric company id from a /company/...
// request path.
func companyIDFromPath(path string) (int, error) {
	p := strings.TrimPrefix(path, "/company/")
	p = strings.TrimSuffix(p, "/reconcile")
	p = strings.Trim(p, "/")
	if p == "" || strings.Contains(p, "/") {
		return 0, ErrBadRequest
	}
	id, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid company id %q", ErrBadRequest, p)
	}
	return id, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
