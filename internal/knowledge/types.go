// Package knowledge provides chunk storage and retrieval for grounding chat
// answers in uploaded documents.
//
// Two store families implement the same capability interface: vector-backed
// stores (pgvector, chromem) that rank by cosine similarity, and an in-memory
// keyword store used when no embedding provider or vector index is available.
// Which variant is active is decided once at startup by internal/app; per-call
// failures degrade softly and never switch the variant.
package knowledge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Metadata carries the provenance of a chunk.
type Metadata struct {
	Filename  string    `json:"filename"`
	Sequence  int       `json:"chunk"`
	Timestamp time.Time `json:"timestamp"`
}

// toMap flattens metadata to the string map shape chromem requires.
func (m Metadata) toMap() map[string]string {
	return map[string]string{
		"filename":  m.Filename,
		"chunk":     strconv.Itoa(m.Sequence),
		"timestamp": m.Timestamp.Format(time.RFC3339),
	}
}

// metadataFromMap restores Metadata from the chromem string map shape.
// Malformed values degrade to zero values rather than failing a query.
func metadataFromMap(m map[string]string) Metadata {
	seq, _ := strconv.Atoi(m["chunk"])
	ts, _ := time.Parse(time.RFC3339, m["timestamp"])
	return Metadata{
		Filename:  m["filename"],
		Sequence:  seq,
		Timestamp: ts,
	}
}

// Chunk is the atomic unit of storage and retrieval: a bounded slice of an
// ingested document. Chunks are immutable once stored.
type Chunk struct {
	ID       string
	Text     string
	Metadata Metadata
}

// Result is a retrieved chunk with its relevance score. The keyword store
// reports no score (zero); vector stores report cosine similarity.
type Result struct {
	Chunk      Chunk
	Similarity float32
}

// ChunkID derives a content-addressed identifier from chunk text, so
// re-ingesting identical text overwrites instead of duplicating.
func ChunkID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Store is the capability interface every knowledge store variant satisfies.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Ingest stores a chunk. Vector-backed variants embed the chunk text
	// first; identical text maps to the same ID and overwrites.
	Ingest(ctx context.Context, chunk Chunk) error

	// Query returns up to k chunks relevant to the query text. An empty
	// result is "no context found", never an error condition for callers.
	Query(ctx context.Context, query string, k int) ([]Result, error)

	// Count reports the number of stored chunks, for status endpoints.
	Count(ctx context.Context) (int, error)

	// Name identifies the variant ("pgvector", "chromem", "memory").
	Name() string
}
