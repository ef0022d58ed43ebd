package config

import "errors"

// Error kinds reported by the loader; callers branch with errors.Is.
var (
	// ErrInvalidConfig marks a loaded value that fails validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a failure reading or decoding a source.
	ErrLoadConfig = errors.New("load config failed")
)
