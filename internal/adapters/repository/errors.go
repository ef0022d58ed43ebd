package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound        = errors.New("employee not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrInvalidRecord   = errors.New("invalid record")
)
