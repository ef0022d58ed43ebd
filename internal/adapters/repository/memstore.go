package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/CRRRAW-Holdings/magic-pill-admin/pkg/metrics"
	"github.com/google/uuid"
)

// MemStore implements Store with in-memory maps guarded by a RWMutex.
type MemStore struct {
	mu sync.RWMutex

	companies map[int]model.Company
	plans     []model.Plan

	// employees keyed by document id; order preserves insertion per company.
	employees map[string]model.Employee
	order     map[int][]string
}

// NewMemStore creates an in-memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		companies: make(map[int]model.Company),
		employees: make(map[string]model.Employee),
		order:     make(map[int][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCompanies returns all insurance companies.
func (s *MemStore) ListCompanies(_ context.Context) []model.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, c)
	}
	return out
}

// GetCompany returns one company by id.
func (s *MemStore) GetCompany(_ context.Context, id int) (model.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.companies[id]
	if !ok {
		return model.Company{}, fmt.Errorf("%w: company %d", ErrCompanyNotFound, id)
	}
	return c, nil
}

// ListPlans returns all benefit plans.
func (s *MemStore) ListPlans(_ context.Context) []model.Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

// ListEmployees returns a snapshot copy; callers may hold it across a
// reconciliation run without seeing concurrent writes.
func (s *MemStore) ListEmployees(_ context.Context, companyID int) []model.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.order[companyID]
	out := make([]model.Employee, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.employees[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// AddEmployee inserts a new employee, minting its document id.
func (s *MemStore) AddEmployee(_ context.Context, e model.Employee) (model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.DocumentID != "" {
		return model.Employee{}, fmt.Errorf("%w: add must not carry a document id", ErrInvalidRecord)
	}
	e.DocumentID = uuid.NewString()
	s.employees[e.DocumentID] = e
	s.order[e.CompanyID] = append(s.order[e.CompanyID], e.DocumentID)

	metrics.UpdateEmployeesTracked(len(s.employees))
	return e, nil
}

// UpdateEmployee overwrites an existing employee by document id.
func (s *MemStore) UpdateEmployee(_ context.Context, e model.Employee) (model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.employees[e.DocumentID]
	if !ok {
		return model.Employee{}, fmt.Errorf("%w: document %q", ErrNotFound, e.DocumentID)
	}
	// Company reassignment is not an update; the engine never produces one.
	if e.CompanyID != existing.CompanyID {
		return model.Employee{}, fmt.Errorf("%w: document %q cannot change company", ErrInvalidRecord, e.DocumentID)
	}
	s.employees[e.DocumentID] = e
	return e, nil
}

// ToggleEmployee flips an employee's active status.
func (s *MemStore) ToggleEmployee(_ context.Context, documentID string) (model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[documentID]
	if !ok {
		return model.Employee{}, fmt.Errorf("%w: document %q", ErrNotFound, documentID)
	}
	e.IsActive = !e.IsActive
	s.employees[documentID] = e
	return e, nil
}

// CountEmployees returns the number of employees across all companies.
func (s *MemStore) CountEmployees(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees)
}
