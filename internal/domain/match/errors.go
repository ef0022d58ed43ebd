package match

import "errors"

// Sentinel kinds for matcher errors.
var (
	ErrDuplicateData = errors.New("duplicate data error")
)
