package model

// Action classifies the net effect of one uploaded row.
type Action string

const (
	// ActionAdd inserts a brand-new employee.
	ActionAdd Action = "add"
	// ActionUpdate edits one or more fields of an existing employee.
	ActionUpdate Action = "update"
	// ActionToggle flips active/inactive status and changes nothing else.
	ActionToggle Action = "toggle"
)

// ChangeRecord is the engine's output unit for one non-no-op row.
// Add records never carry a DocumentID; update and toggle always do.
type ChangeRecord struct {
	Action        Action
	UserData      Employee
	ChangedFields []string
}

// ChangeSet is the ordered list of proposed operations produced by one
// file upload, in input row order. Created fresh per upload and handed
// to the approval layer; the engine keeps no state between invocations.
type ChangeSet []ChangeRecord
