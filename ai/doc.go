// Package ai provides the embedding abstraction used by the vector store
// backends.
//
// The Embedder interface keeps the pipeline and store code independent of
// any particular provider SDK. Two implementations ship with the module:
//
//   - ai/googleai: production implementation using Gemini embeddings
//   - ai/mock: deterministic test double for unit testing without an
//     external service
//
// Production constructors return the interface type to enforce the
// abstraction; the mock constructor returns a concrete type so tests can
// inject behavior and assert on call counts.
package ai
