package knowledge

import (
	"context"

	"github.com/jarvis0/jarvis/internal/log"
)

// Fallback wraps a vector-backed store with the in-memory keyword store so
// provider failures degrade per call instead of erroring.
//
// Ingest: a chunk the vector store rejects (embedding or index error) lands
// in the keyword store, so the store never loses a chunk. Query: a vector
// search failure yields an empty result, which callers treat as "no context
// found". Neither path ever switches the active variant.
type Fallback struct {
	vector Store
	mem    *Memory
	logger log.Logger
}

// NewFallback wraps vector with mem as its per-chunk safety net.
func NewFallback(vector Store, mem *Memory, logger log.Logger) *Fallback {
	return &Fallback{vector: vector, mem: mem, logger: logger}
}

// Ingest tries the vector store first and soft-fails into the keyword store.
func (f *Fallback) Ingest(ctx context.Context, chunk Chunk) error {
	if err := f.vector.Ingest(ctx, chunk); err != nil {
		f.logger.Warn("vector ingest failed, keeping chunk in memory",
			"id", chunk.ID, "error", err)
		return f.mem.Ingest(ctx, chunk)
	}
	return nil
}

// Query delegates to the vector store; failures surface as an empty result.
func (f *Fallback) Query(ctx context.Context, query string, k int) ([]Result, error) {
	results, err := f.vector.Query(ctx, query, k)
	if err != nil {
		f.logger.Warn("vector search failed, returning no context", "error", err)
		return nil, nil
	}
	return results, nil
}

// Count sums the vector store and the soft-fail overflow. A vector count
// failure degrades to the overflow count alone.
func (f *Fallback) Count(ctx context.Context) (int, error) {
	memCount, _ := f.mem.Count(ctx)
	vecCount, err := f.vector.Count(ctx)
	if err != nil {
		f.logger.Warn("vector count failed", "error", err)
		return memCount, nil
	}
	return vecCount + memCount, nil
}

// Name reports the wrapped vector variant.
func (f *Fallback) Name() string { return f.vector.Name() }
