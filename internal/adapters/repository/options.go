// Package repository defines the enrollment store interface and errors.
package repository

import (
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/google/uuid"
)

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCompanies seeds the store with insurance companies.
func WithCompanies(companies []model.Company) Option {
	return func(s *MemStore) {
		for _, c := range companies {
			s.companies[c.ID] = c
		}
	}
}

// WithPlans seeds the store with benefit plans.
func WithPlans(plans []model.Plan) Option {
	return func(s *MemStore) {
		s.plans = append(s.plans, plans...)
	}
}

// WithEmployees seeds the store with employees. Records without a
// document id get one minted, mirroring an insert.
func WithEmployees(employees []model.Employee) Option {
	return func(s *MemStore) {
		for _, e := range employees {
			if e.DocumentID == "" {
				e.DocumentID = uuid.NewString()
			}
			s.employees[e.DocumentID] = e
			s.order[e.CompanyID] = append(s.order[e.CompanyID], e.DocumentID)
		}
	}
}
