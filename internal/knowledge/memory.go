package knowledge

import (
	"context"
	"strings"
	"sync"
)

// Memory is the in-process keyword fallback store: an append-only list with
// whitespace-token substring matching.
//
// Query results come back in storage order, first match wins, deliberately
// unranked. This mirrors the degraded-mode behavior the rest of the pipeline
// is tested against; do not "improve" it into a ranked search.
type Memory struct {
	mu     sync.Mutex
	chunks []Chunk
}

// NewMemory creates an empty in-memory keyword store.
func NewMemory() *Memory {
	return &Memory{}
}

// Ingest appends the chunk. Never fails.
func (m *Memory) Ingest(_ context.Context, chunk Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = append(m.chunks, chunk)
	return nil
}

// Query lowercases the query, splits it into whitespace-delimited tokens, and
// returns up to k chunks whose text contains any token as a substring.
func (m *Memory) Query(_ context.Context, query string, k int) ([]Result, error) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 || k <= 0 {
		return nil, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var results []Result
	for _, chunk := range m.chunks {
		text := strings.ToLower(chunk.Text)
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				results = append(results, Result{Chunk: chunk})
				break
			}
		}
		if len(results) >= k {
			break
		}
	}
	return results, nil
}

// Count reports the number of stored chunks.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chunks), nil
}

// Name identifies the variant.
func (*Memory) Name() string { return "memory" }
