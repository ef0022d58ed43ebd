// Package match finds the existing employees that plausibly represent
// the same person as an uploaded candidate.
package match

import (
	"fmt"
	"strings"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/normalize"
)

// Policy decides whether an existing record plausibly represents the
// same person as a candidate. Policies are pluggable so alternative
// strictness levels can be tested without touching the pipeline shape.
type Policy func(candidate model.Candidate, existing model.Employee) bool

// EmailCompanyDOBOrName is the default policy: email and company must
// both anchor the match, and then either the date of birth or the first
// name must agree. This tolerates a single data-entry discrepancy (a DOB
// typo or a name change) without letting go of the anchors.
func EmailCompanyDOBOrName(c model.Candidate, e model.Employee) bool {
	if !strings.EqualFold(c.Email, e.Email) || c.CompanyID != e.CompanyID {
		return false
	}
	if c.DOB == e.DOB {
		return true
	}
	return c.FirstName != "" &&
		normalize.FoldName(c.FirstName) == normalize.FoldName(e.FirstName)
}

// UsernameExact is the weakest historical policy: a case-insensitive
// username match within the same company. Kept selectable for
// deployments whose rosters predate email capture.
func UsernameExact(c model.Candidate, e model.Employee) bool {
	return c.Username != "" &&
		c.CompanyID == e.CompanyID &&
		strings.EqualFold(c.Username, e.Username)
}

// Matcher applies a policy across the existing-employee snapshot.
type Matcher struct {
	policy Policy
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithPolicy overrides the default match policy.
func WithPolicy(p Policy) Option {
	return func(m *Matcher) {
		if p != nil {
			m.policy = p
		}
	}
}

// New creates a Matcher with configuration options.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		policy: EmailCompanyDOBOrName,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns every existing record the policy accepts for the
// candidate. Zero matches means a pure addition; exactly one proceeds to
// classification; more than one means the snapshot itself holds
// duplicates sharing the weak match criteria, and the whole batch fails
// with ErrDuplicateData rather than guessing which record to update.
func (m *Matcher) Match(candidate model.Candidate, snapshot []model.Employee) ([]model.Employee, error) {
	var matched []model.Employee
	for _, e := range snapshot {
		if m.policy(candidate, e) {
			matched = append(matched, e)
		}
	}
	if len(matched) > 1 {
		return nil, fmt.Errorf("%w: candidate %s (row %d) matches %d existing records",
			ErrDuplicateData, candidate.IdentityKey(), candidate.RowNum, len(matched))
	}
	return matched, nil
}
