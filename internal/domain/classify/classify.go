// Package classify decides the net effect of a matched candidate:
// no-op, field update, or a pure status toggle. Unmatched candidates are
// always additions.
package classify

import (
	"strings"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
)

// Diffable field names in emission order. Username and the identity key
// are derived rather than user-editable, so they stay out of the diff.
var diffFields = []string{
	"email",
	"dob",
	"firstName",
	"lastName",
	"planId",
	"isActive",
	"address",
	"phone",
	"isDependant",
}

// Classifier turns (existing, candidate) pairs into change records.
type Classifier struct{}

// New creates a Classifier.
func New() *Classifier {
	return &Classifier{}
}

// Add builds the change record for a candidate with no existing match.
// Additions carry the full normalized field set and never a document id.
// A file without a status column enrolls new people as active.
func (c *Classifier) Add(candidate model.Candidate) model.ChangeRecord {
	if !candidate.IsActiveSet {
		candidate.IsActive = true
	}
	return model.ChangeRecord{
		Action:   model.ActionAdd,
		UserData: employeeFromCandidate(candidate, ""),
	}
}

// Classify compares a matched pair field by field. The returned bool is
// false for a pure no-op, which produces no change record at all.
//
// A lone isActive difference is a toggle: a status flip the review UI
// treats distinctly from a data edit for audit purposes. Any other
// difference, with or without isActive, is an update carrying the list
// of changed fields for UI highlighting.
func (c *Classifier) Classify(existing model.Employee, candidate model.Candidate) (model.ChangeRecord, bool) {
	// A file whose schema omits the status column keeps the existing
	// status; silence is not a disable.
	if !candidate.IsActiveSet {
		candidate.IsActive = existing.IsActive
	}
	changed := diff(existing, candidate)
	if len(changed) == 0 {
		return model.ChangeRecord{}, false
	}

	merged := employeeFromCandidate(candidate, existing.DocumentID)
	if merged.Username == "" {
		merged.Username = existing.Username
	}

	if len(changed) == 1 && changed[0] == "isActive" {
		return model.ChangeRecord{
			Action:   model.ActionToggle,
			UserData: merged,
		}, true
	}

	return model.ChangeRecord{
		Action:        model.ActionUpdate,
		UserData:      merged,
		ChangedFields: changed,
	}, true
}

// diff returns the names of fields whose values differ, in stable order.
func diff(e model.Employee, c model.Candidate) []string {
	var changed []string
	for _, f := range diffFields {
		if !fieldEqual(f, e, c) {
			changed = append(changed, f)
		}
	}
	return changed
}

func fieldEqual(field string, e model.Employee, c model.Candidate) bool {
	switch field {
	case "email":
		return strings.EqualFold(e.Email, c.Email)
	case "dob":
		return e.DOB == c.DOB
	case "firstName":
		return e.FirstName == c.FirstName
	case "lastName":
		return e.LastName == c.LastName
	case "planId":
		return model.PlanIDEqual(e.PlanID, c.PlanID)
	case "isActive":
		return e.IsActive == c.IsActive
	case "address":
		return e.Address == c.Address
	case "phone":
		return e.Phone == c.Phone
	case "isDependant":
		return e.IsDependant == c.IsDependant
	default:
		return true
	}
}

func employeeFromCandidate(c model.Candidate, documentID string) model.Employee {
	return model.Employee{
		DocumentID:  documentID,
		Username:    c.Username,
		Email:       c.Email,
		DOB:         c.DOB,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		CompanyID:   c.CompanyID,
		PlanID:      c.PlanID,
		IsActive:    c.IsActive,
		Address:     c.Address,
		Phone:       c.Phone,
		IsDependant: c.IsDependant,
	}
}
