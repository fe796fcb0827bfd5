package pgvector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanadlabs/hadithvec/ai/mock"
	"github.com/sanadlabs/hadithvec/store"
)

func TestNewStore_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing connection url", func(t *testing.T) {
		_, err := NewStore(ctx, Config{
			CollectionName: "rag_ahadees",
			Embedder:       mock.NewMockEmbedder(),
		})
		assert.ErrorIs(t, err, store.ErrConnectionRequired)
	})

	t.Run("missing collection name", func(t *testing.T) {
		_, err := NewStore(ctx, Config{
			ConnectionURL: "postgresql://localhost/hadith",
			Embedder:      mock.NewMockEmbedder(),
		})
		assert.ErrorIs(t, err, store.ErrCollectionRequired)
	})

	t.Run("missing embedder", func(t *testing.T) {
		_, err := NewStore(ctx, Config{
			ConnectionURL:  "postgresql://localhost/hadith",
			CollectionName: "rag_ahadees",
		})
		assert.ErrorIs(t, err, store.ErrEmbedderRequired)
	})
}

func TestEmbedderAdapter(t *testing.T) {
	ctx := context.Background()
	inner := mock.NewMockEmbedder()
	adapter := &embedderAdapter{inner: inner}

	vectors, err := adapter.EmbedDocuments(ctx, []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.NotEqual(t, vectors[0], vectors[1], "distinct texts embed differently")

	query, err := adapter.EmbedQuery(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, vectors[0], query, "query embedding matches the document embedding of the same text")
}
