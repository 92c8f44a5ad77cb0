package ingestion

import "errors"

var (
	// ErrRegistryRequired is returned when a nil registry is supplied.
	ErrRegistryRequired = errors.New("registry required")
)
