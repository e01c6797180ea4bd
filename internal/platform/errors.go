package platform

import "errors"

// Storage errors
var (
	ErrOutOfRange  = errors.New("storage access out of range")
	ErrWriteFailed = errors.New("storage write failed")
)
