package normalize

import "errors"

// Sentinel kinds for normalization errors.
var (
	ErrTransform = errors.New("transform error")
)
