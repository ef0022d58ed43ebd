// Package validate enforces required fields across a decoded batch.
//
// Validation is all-or-nothing: any row missing a required identity
// field rejects the entire upload. Partial imports risk silently
// omitting employees the administrator intended to update.
package validate

import (
	"fmt"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/decode"
)

// Required identity columns every row must carry.
var requiredColumns = []string{"email", "dob"}

// Validator checks decoded rows before normalization.
type Validator struct {
	required []string
}

// Option applies a configuration option to the Validator.
type Option func(*Validator)

// WithRequiredColumns overrides the default required column set.
func WithRequiredColumns(columns []string) Option {
	return func(v *Validator) {
		if len(columns) > 0 {
			v.required = columns
		}
	}
}

// New creates a Validator with configuration options.
func New(opts ...Option) *Validator {
	v := &Validator{
		required: requiredColumns,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate verifies that every row has non-empty values for all required
// columns. The first offending row fails the whole batch; no partially
// valid batch proceeds further.
func (v *Validator) Validate(rows []decode.Row) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: file contains no data rows", ErrValidation)
	}
	for _, row := range rows {
		for _, col := range v.required {
			if !row.Has(col) {
				return fmt.Errorf("%w: row %d is missing required field %q", ErrValidation, row.Num, col)
			}
		}
	}
	return nil
}
