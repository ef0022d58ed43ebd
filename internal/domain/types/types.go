// Package types contains the wire shapes shared between the engine and
// the review/approval HTTP surface. Field names mirror the persistence
// API's snake_case schema.
package types

import (
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
)

// UserData is the JSON shape of one employee payload.
type UserData struct {
	DocumentID  string `json:"document_id,omitempty"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email"`
	DOB         string `json:"dob"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyID   int    `json:"insurance_company_id"`
	PlanID      *int   `json:"magic_pill_plan_id"`
	IsActive    bool   `json:"is_active"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	IsDependant bool   `json:"is_dependant"`
}

// ChangeRecord is the JSON shape of one proposed operation.
type ChangeRecord struct {
	Action        string   `json:"action"`
	UserData      UserData `json:"user_data"`
	ChangedFields []string `json:"changedFields,omitempty"`
}

// Company is the JSON shape of an insurance company reference row.
type Company struct {
	ID   int    `json:"insurance_company_id"`
	Name string `json:"insurance_company_name"`
}

// Plan is the JSON shape of a benefit plan reference row.
type Plan struct {
	ID      int    `json:"magic_pill_plan_id"`
	Name    string `json:"plan_name"`
	Details string `json:"plan_details,omitempty"`
}

// FromEmployee converts a domain employee to its wire shape.
func FromEmployee(e model.Employee) UserData {
	return UserData{
		DocumentID:  e.DocumentID,
		Username:    e.Username,
		Email:       e.Email,
		DOB:         e.DOB,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		CompanyID:   e.CompanyID,
		PlanID:      e.PlanID,
		IsActive:    e.IsActive,
		Address:     e.Address,
		Phone:       e.Phone,
		IsDependant: e.IsDependant,
	}
}

// ToEmployee converts a wire payload back to a domain employee.
func (u UserData) ToEmployee() model.Employee {
	return model.Employee{
		DocumentID:  u.DocumentID,
		Username:    u.Username,
		Email:       u.Email,
		DOB:         u.DOB,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		CompanyID:   u.CompanyID,
		PlanID:      u.PlanID,
		IsActive:    u.IsActive,
		Address:     u.Address,
		Phone:       u.Phone,
		IsDependant: u.IsDependant,
	}
}

// FromChangeRecord converts a domain change record to its wire shape.
func FromChangeRecord(r model.ChangeRecord) ChangeRecord {
	return ChangeRecord{
		Action:        string(r.Action),
		UserData:      FromEmployee(r.UserData),
		ChangedFields: r.ChangedFields,
	}
}

// FromChangeSet converts a whole change-set, preserving order.
func FromChangeSet(cs model.ChangeSet) []ChangeRecord {
	out := make([]ChangeRecord, 0, len(cs))
	for _, r := range cs {
		out = append(out, FromChangeRecord(r))
	}
	return out
}
