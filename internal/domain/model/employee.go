// Package model contains domain models passed between layers.
package model

import "fmt"

// Candidate is a canonical employee record derived from one uploaded row.
// It is not yet matched against anything existing.
type Candidate struct {
	Username    string
	Email       string // lower-cased
	DOB         string // ISO YYYY-MM-DD
	FirstName   string
	LastName    string
	CompanyID   int  // always the upload's company context, never the file
	PlanID *int // resolved from the plan name; nil when no plan matched

	// IsActive is meaningful only when IsActiveSet is true. A file whose
	// schema has no status column says nothing about status, and reading
	// that silence as "inactive" would disable a whole roster.
	IsActive    bool
	IsActiveSet bool

	Address     string
	Phone       string // digits and hyphens only
	IsDependant bool

	// RowNum is the 1-based data row this candidate came from.
	RowNum int
}

// IdentityKey joins the fields that identify the same real-world person
// across re-uploads. Used for logging and traceability only; matching is
// the match package's concern.
func (c Candidate) IdentityKey() string {
	return fmt.Sprintf("%s|%s|%d|%s", c.Email, c.DOB, c.CompanyID, c.FirstName)
}

// Employee is the authoritative record already known to the system.
// DocumentID is owned by the persistence layer and never minted here.
type Employee struct {
	DocumentID  string
	Username    string
	Email       string
	DOB         string
	FirstName   string
	LastName    string
	CompanyID   int
	PlanID      *int
	IsActive    bool
	Address     string
	Phone       string
	IsDependant bool
}

// Company is a reference-lookup row for an insurance company.
type Company struct {
	ID   int
	Name string
}

// Plan is a reference-lookup row for a benefit plan.
type Plan struct {
	ID      int
	Name    string
	Details string
}

// PlanIDEqual reports whether two optional plan references point at the
// same plan, treating two nils as equal.
func PlanIDEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
