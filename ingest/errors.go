package ingest

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrStoreRequired is returned when a pipeline is constructed without
	// a vector store.
	ErrStoreRequired = errors.New("vector store is required")

	// ErrCheckpointStoreRequired is returned when a pipeline is
	// constructed without a checkpoint store.
	ErrCheckpointStoreRequired = errors.New("checkpoint store is required")
)
