// Copyright 2025 Sanad Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pgvector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores/pgvector"

	"github.com/sanadlabs/hadithvec/ai"
	"github.com/sanadlabs/hadithvec/core"
	"github.com/sanadlabs/hadithvec/store"
)

// Config holds configuration for the pgvector backend.
type Config struct {
	// ConnectionURL is the PostgreSQL connection string.
	ConnectionURL string

	// CollectionName is the pgvector collection documents are stored in.
	CollectionName string

	// Embedder computes document and query embeddings. The store client
	// invokes it implicitly on insert and search.
	Embedder ai.Embedder
}

// Store implements store.VectorStore on PostgreSQL with the pgvector
// extension.
type Store struct {
	store  pgvector.Store
	logger *slog.Logger
}

var _ store.VectorStore = (*Store)(nil)

// newStore is an internal constructor that returns the concrete type.
func newStore(ctx context.Context, config Config) (*Store, error) {
	if config.ConnectionURL == "" {
		return nil, store.ErrConnectionRequired
	}
	if config.CollectionName == "" {
		return nil, store.ErrCollectionRequired
	}
	if config.Embedder == nil {
		return nil, store.ErrEmbedderRequired
	}

	// pgvector.New connects and prepares the extension and collection
	// tables, so an unreachable database fails here rather than on the
	// first batch.
	inner, err := pgvector.New(ctx,
		pgvector.WithConnectionURL(config.ConnectionURL),
		pgvector.WithEmbedder(&embedderAdapter{inner: config.Embedder}),
		pgvector.WithCollectionName(config.CollectionName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pgvector store: %w", err)
	}

	return &Store{
		store:  inner,
		logger: slog.Default().With("component", "pgvector-store"),
	}, nil
}

// NewStore connects to PostgreSQL and prepares the collection.
//
// Returns store.VectorStore interface to enforce abstraction.
func NewStore(ctx context.Context, config Config) (store.VectorStore, error) {
	return newStore(ctx, config)
}

// AddDocuments persists a batch of documents, embedding them through the
// configured embedder.
func (s *Store) AddDocuments(ctx context.Context, docs []core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	wire := make([]schema.Document, len(docs))
	for i, doc := range docs {
		wire[i] = schema.Document{
			PageContent: doc.Content,
			Metadata:    doc.Metadata,
		}
	}

	if _, err := s.store.AddDocuments(ctx, wire); err != nil {
		s.logger.Debug("batch insertion failed", "count", len(docs), "err", err)
		return fmt.Errorf("failed to add documents: %w", err)
	}

	return nil
}

// SimilaritySearch returns up to k documents ranked by similarity to the
// query text.
func (s *Store) SimilaritySearch(ctx context.Context, query string, k int) ([]core.SearchResult, error) {
	hits, err := s.store.SimilaritySearch(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	results := make([]core.SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = core.SearchResult{
			Document: core.Document{
				Content:  hit.PageContent,
				Metadata: hit.Metadata,
			},
			Score: hit.Score,
		}
	}

	return results, nil
}

// Close closes the database connection.
func (s *Store) Close(ctx context.Context) error {
	return s.store.Close(ctx)
}

// embedderAdapter exposes an ai.Embedder as a langchaingo
// embeddings.Embedder so the pgvector client can invoke it implicitly.
type embedderAdapter struct {
	inner ai.Embedder
}

var _ embeddings.Embedder = (*embedderAdapter)(nil)

func (a *embedderAdapter) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return a.inner.EmbedTexts(ctx, texts)
}

func (a *embedderAdapter) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return a.inner.EmbedText(ctx, text)
}
