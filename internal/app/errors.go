package app

import "errors"

// Sentinel kinds for upload gate errors.
var (
	ErrFileSizeExceeded = errors.New("file size exceeded")
)
