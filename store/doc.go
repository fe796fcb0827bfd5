// Package store defines the narrow vector-store abstraction the insertion
// pipeline depends on.
//
// Two backends ship with the module: store/pgvector (PostgreSQL with the
// pgvector extension, embeddings computed implicitly by the store client)
// and store/qdrant (qdrant over grpc, embeddings computed explicitly with
// content-derived point IDs so re-runs upsert instead of duplicating).
// The pipeline never sees which backend it is talking to.
package store
