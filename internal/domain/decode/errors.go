package decode

import "errors"

// Sentinel kinds for decoder errors.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileFormat          = errors.New("file format error")
)
