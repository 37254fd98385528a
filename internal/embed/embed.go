// Package embed wraps opaque embedding models behind a small capability
// interface: text in, fixed-dimension vector out.
//
// Initialization failure of a provider is reported once at startup by the
// availability probe and is terminal for the process lifetime; there is no
// retry or hot-swap. Call-time failures are the caller's to degrade on.
package embed

import (
	"context"
	"errors"
)

// Dimension is the embedding vector dimension shared by every provider.
// Gemini embeddings are truncated to this size via OutputDimensionality
// (Matryoshka representation) and nomic-embed-text produces it natively,
// so the pgvector schema can use a single vector(768) column.
const Dimension = 768

var (
	// ErrUnavailable indicates no embedding provider is configured.
	ErrUnavailable = errors.New("embedding provider unavailable")

	// ErrEmptyText indicates an empty input, which is invalid for every provider.
	ErrEmptyText = errors.New("text must not be empty")
)

// Embedder maps text to a Dimension-length vector.
//
// Implementations must be safe for concurrent use.
type Embedder interface {
	// Embed returns the embedding vector for a non-empty text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Model returns the embedding model identifier, for status reporting.
	Model() string
}
