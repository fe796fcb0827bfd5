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


package qdrant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qdrant/go-client/qdrant"

	"github.com/sanadlabs/hadithvec/ai"
	"github.com/sanadlabs/hadithvec/core"
	"github.com/sanadlabs/hadithvec/store"
)

// payloadTextKey is the payload field holding the document content.
const payloadTextKey = "text"

// Config holds configuration for the qdrant backend.
type Config struct {
	Host string
	Port int

	// CollectionName is the qdrant collection documents are stored in.
	// It is created with cosine distance if it does not exist.
	CollectionName string

	// VectorSize is the dimensionality of the collection's vectors. It
	// must match the embedding model's output size.
	VectorSize int

	// Embedder computes document and query embeddings.
	Embedder ai.Embedder
}

// Store implements store.VectorStore on qdrant. Unlike the pgvector
// backend, embeddings are computed explicitly before upserting, and point
// IDs are derived from document content so re-ingestion upserts instead of
// duplicating.
type Store struct {
	client     *qdrant.Client
	collection string
	embedder   ai.Embedder
	logger     *slog.Logger
}

var _ store.VectorStore = (*Store)(nil)

// newStore is an internal constructor that returns the concrete type.
func newStore(ctx context.Context, config Config) (*Store, error) {
	if config.CollectionName == "" {
		return nil, store.ErrCollectionRequired
	}
	if config.Embedder == nil {
		return nil, store.ErrEmbedderRequired
	}
	if config.VectorSize <= 0 {
		return nil, fmt.Errorf("vector size must be greater than 0, got %d", config.VectorSize)
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: config.Host,
		Port: config.Port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	s := &Store{
		client:     client,
		collection: config.CollectionName,
		embedder:   config.Embedder,
		logger:     slog.Default().With("component", "qdrant-store"),
	}

	// Reaching the collection doubles as the connectivity check: an
	// unreachable server fails construction.
	if err := s.ensureCollection(ctx, config.VectorSize); err != nil {
		_ = client.Close()
		return nil, err
	}

	return s, nil
}

// NewStore connects to qdrant and ensures the collection exists.
//
// Returns store.VectorStore interface to enforce abstraction.
func NewStore(ctx context.Context, config Config) (store.VectorStore, error) {
	return newStore(ctx, config)
}

func (s *Store) ensureCollection(ctx context.Context, vectorSize int) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to reach qdrant: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     uint64(vectorSize),
					Distance: qdrant.Distance_Cosine,
				},
			},
		},
	}); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
	}

	s.logger.Info("created collection", "collection", s.collection, "vectorSize", vectorSize)
	return nil
}

// AddDocuments embeds a batch of documents and upserts them as points.
func (s *Store) AddDocuments(ctx context.Context, docs []core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(docs), len(vectors))
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for i, doc := range docs {
		payload := map[string]any{
			payloadTextKey: doc.Content,
		}
		for k, v := range doc.Metadata {
			payload[k] = v
		}

		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(core.IDFromContent(doc.Content))),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(payload),
		}
	}

	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// SimilaritySearch embeds the query and returns up to k ranked documents.
func (s *Store) SimilaritySearch(ctx context.Context, query string, k int) ([]core.SearchResult, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	limit := uint64(k)
	hits, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Limit:          &limit,
		Query:          qdrant.NewQuery(vector...),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	results := make([]core.SearchResult, 0, len(hits))
	for _, hit := range hits {
		metadata := make(map[string]any, len(hit.Payload))
		var content string
		for key, value := range hit.Payload {
			if key == payloadTextKey {
				content = value.GetStringValue()
				continue
			}
			metadata[key] = convertValue(value)
		}

		results = append(results, core.SearchResult{
			Document: core.Document{Content: content, Metadata: metadata},
			Score:    hit.Score,
		})
	}

	return results, nil
}

// Close closes the grpc connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Close()
}

// convertValue maps a qdrant payload value back to a plain Go value.
func convertValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_ListValue:
		out := make([]any, len(val.ListValue.Values))
		for i, lv := range val.ListValue.Values {
			out[i] = convertValue(lv)
		}
		return out
	case *qdrant.Value_StructValue:
		out := make(map[string]any, len(val.StructValue.Fields))
		for key, sv := range val.StructValue.Fields {
			out[key] = convertValue(sv)
		}
		return out
	default:
		return nil
	}
}
