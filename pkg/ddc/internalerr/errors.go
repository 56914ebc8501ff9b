package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrInvalidConfig  = errors.New("invalid configuration")
)
