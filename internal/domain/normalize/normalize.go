// Package normalize maps loosely-typed decoded rows onto canonical
// employee candidates. It is the single boundary where untyped file data
// becomes typed, so all per-field cleanup lives here.
package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/decode"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"golang.org/x/text/unicode/norm"
)

// Normalizer converts raw rows into candidates for one upload context.
type Normalizer struct {
	companyID int
	plans     []model.Plan
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithPlans sets the known plan list used to resolve plan names.
func WithPlans(plans []model.Plan) Option {
	return func(n *Normalizer) {
		n.plans = plans
	}
}

// New creates a Normalizer for the given company context. The company id
// always comes from the upload context, never from the file, so a
// mistaken or malicious file cannot reassign employees to another
// company.
func New(companyID int, opts ...Option) *Normalizer {
	n := &Normalizer{
		companyID: companyID,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize maps one raw row to one employee candidate. Any per-field
// failure is wrapped as a transform error carrying the row number, which
// aborts the batch.
func (n *Normalizer) Normalize(row decode.Row) (model.Candidate, error) {
	dob, err := NormalizeDate(field(row, "dob"))
	if err != nil {
		return model.Candidate{}, fmt.Errorf("%w: row %d: dob: %v", ErrTransform, row.Num, err)
	}

	c := model.Candidate{
		Username:    field(row, "username"),
		Email:       strings.ToLower(field(row, "email")),
		DOB:         dob,
		FirstName:   field(row, "firstName", "first_name"),
		LastName:    field(row, "lastName", "last_name"),
		CompanyID:   n.companyID,
		PlanID:      n.resolvePlanID(field(row, "planName", "plan_name")),
		Address:     field(row, "address"),
		Phone:       NormalizePhone(field(row, "phone")),
		IsDependant: rowBool(row, "isDependant", "is_dependant", "isDependent", "is_dependent"),
		RowNum:      row.Num,
	}
	c.IsActive, c.IsActiveSet = rowFlag(row, "isActive", "is_active")
	return c, nil
}

// resolvePlanID resolves a free-text plan name case-insensitively against
// the known plan list. A miss yields nil, which is preserved rather than
// treated as an error; downstream diffing surfaces it as an anomaly.
func (n *Normalizer) resolvePlanID(planName string) *int {
	if planName == "" {
		return nil
	}
	for _, p := range n.plans {
		if strings.EqualFold(p.Name, planName) {
			id := p.ID
			return &id
		}
	}
	return nil
}

// NormalizePhone coerces a phone value to digits and hyphens only. The
// source cell may have been a number or a formatted string.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FoldName canonicalizes a person name for comparison: lower-cased,
// trimmed, diacritics stripped.
func FoldName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return s
	}
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// field returns the first non-empty value among alternate column names.
func field(row decode.Row, names ...string) string {
	for _, name := range names {
		if v := row.String(name); v != "" {
			return v
		}
	}
	return ""
}

func rowBool(row decode.Row, names ...string) bool {
	for _, name := range names {
		if row.Has(name) {
			return row.Bool(name)
		}
	}
	return false
}

// rowFlag returns the boolean value of the first column present in the
// file's schema, and whether any of the names was present at all. A file
// with no such column carries no signal either way.
func rowFlag(row decode.Row, names ...string) (value, present bool) {
	for _, name := range names {
		if row.Present(name) {
			return row.Bool(name), true
		}
	}
	return false, false
}
