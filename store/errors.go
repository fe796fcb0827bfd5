package store

import "errors"

var (
	// ErrEmbedderRequired is returned when a backend is constructed
	// without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrCollectionRequired is returned when a backend is constructed
	// without a collection name.
	ErrCollectionRequired = errors.New("collection name is required")

	// ErrConnectionRequired is returned when a backend is constructed
	// without connection details.
	ErrConnectionRequired = errors.New("connection details are required")
)
