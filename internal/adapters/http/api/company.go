// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/adapters/repository"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/types"
)

// CompanyDependencies defines the interface for company lookups.
type CompanyDependencies interface {
	Companies(ctx context.Context) []model.Company
	Company(ctx context.Context, id int) (model.Company, []model.Employee, error)
}

// CompanyHandler handles company reference lookups.
type CompanyHandler struct {
	deps CompanyDependencies
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(deps CompanyDependencies) *CompanyHandler {
	return &CompanyHandler{deps: deps}
}

// companyDetail is the JSON shape of one company with its employees.
type companyDetail struct {
	ID        int              `json:"insurance_company_id"`
	Name      string           `json:"insurance_company_name"`
	Employees []types.UserData `json:"employees"`
}

// HandleListCompanies handles GET /company requests.
func (h *CompanyHandler) HandleListCompanies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	companies := h.deps.Companies(r.Context())
	out := make([]types.Company, 0, len(companies))
	for _, c := range companies {
		out = append(out, types.Company{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetCompany handles GET /company/{id} requests, returning the
// company with its current employee roster.
func (h *CompanyHandler) HandleGetCompany(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, err := companyIDFromPath(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	company, employees, err := h.deps.Company(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	detail := companyDetail{
		ID:        company.ID,
		Name:      company.Name,
		Employees: make([]types.UserData, 0, len(employees)),
	}
	for _, e := range employees {
		detail.Employees = append(detail.Employees, types.FromEmployee(e))
	}
	writeJSON(w, http.StatusOK, detail)
}
