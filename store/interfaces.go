package store

import (
	"context"

	"github.com/sanadlabs/hadithvec/core"
)

// VectorStore persists documents with their vector representations and
// supports similarity search over them. Embedding happens inside the store
// client: callers hand over plain documents.
//
// Implementations establish connectivity at construction; a store that
// cannot be reached must fail there, not on first use.
type VectorStore interface {
	// AddDocuments persists a batch of documents. The batch is a single
	// implicit unit of work against the store; partial application on
	// failure is the store's concern, the caller simply retries the batch.
	AddDocuments(ctx context.Context, docs []core.Document) error

	// SimilaritySearch returns up to k documents ranked by similarity to
	// the query text.
	SimilaritySearch(ctx context.Context, query string, k int) ([]core.SearchResult, error)

	// Close releases the store connection. After Close the store must not
	// be used.
	Close(ctx context.Context) error
}
