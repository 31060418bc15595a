package services

import "errors"

// Service-level errors. Dataset ingestion sentinels live in the shared
// errors package; these cover concerns local to this layer.
var (
	// Manual entry errors
	ErrEntryNotFound = errors.New("manual entry not found")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
