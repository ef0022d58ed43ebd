// Package repository defines the enrollment store interface and errors.
//
// The store is the authoritative snapshot the reconciliation engine
// diffs against. Document ids are opaque and minted here on insert; the
// engine never generates them.
package repository

import (
	"context"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
)

// Store provides read/write access to employee and reference data.
type Store interface {
	// ListCompanies returns all insurance companies.
	ListCompanies(ctx context.Context) []model.Company

	// GetCompany returns one company by id.
	// Returns ErrCompanyNotFound if the id is unknown.
	GetCompany(ctx context.Context, id int) (model.Company, error)

	// ListPlans returns all benefit plans.
	ListPlans(ctx context.Context) []model.Plan

	// ListEmployees returns a read-only snapshot of a company's
	// employees in insertion order.
	ListEmployees(ctx context.Context, companyID int) []model.Employee

	// AddEmployee inserts a new employee and mints its document id.
	AddEmployee(ctx context.Context, e model.Employee) (model.Employee, error)

	// UpdateEmployee overwrites an existing employee by document id.
	// Returns ErrNotFound if the id is unknown.
	UpdateEmployee(ctx context.Context, e model.Employee) (model.Employee, error)

	// ToggleEmployee flips an employee's active status server-side.
	// Returns ErrNotFound if the id is unknown.
	ToggleEmployee(ctx context.Context, documentID string) (model.Employee, error)

	// CountEmployees returns the number of employees across all companies.
	CountEmployees(ctx context.Context) int
}
