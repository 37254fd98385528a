package knowledge

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/jarvis0/jarvis/internal/embed"
	"github.com/jarvis0/jarvis/internal/log"
)

// collectionName is the single chromem collection holding all chunks.
const collectionName = "jarvis-knowledge"

// Chromem stores chunks in an embedded, persistent chromem-go index.
// It fills the same role pgvector does, without an external database.
type Chromem struct {
	collection *chromem.Collection
	logger     log.Logger
}

// NewChromem opens (or creates) a persistent chromem database at path and
// binds its collection to the given embedder.
func NewChromem(path string, embedder embed.Embedder, logger log.Logger) (*Chromem, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening chromem database: %w", err)
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("opening chromem collection: %w", err)
	}

	return &Chromem{collection: collection, logger: logger}, nil
}

// embeddingFunc bridges our Embedder to chromem's callback shape.
// chromem normalizes vectors itself, so no manual normalization here.
func embeddingFunc(embedder embed.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vec, err := embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed failed: %w", err)
		}
		return vec, nil
	}
}

// Ingest stores the chunk; chromem computes the embedding via the bound
// embedding function. Identical text maps to the same ID and overwrites.
func (s *Chromem) Ingest(ctx context.Context, chunk Chunk) error {
	err := s.collection.AddDocument(ctx, chromem.Document{
		ID:       chunk.ID,
		Content:  chunk.Text,
		Metadata: chunk.Metadata.toMap(),
	})
	if err != nil {
		return fmt.Errorf("adding chunk %q: %w", chunk.ID, err)
	}
	s.logger.Debug("chunk stored", "id", chunk.ID, "length", len(chunk.Text))
	return nil
}

// Query returns up to k chunks by cosine similarity, most similar first.
func (s *Chromem) Query(ctx context.Context, query string, k int) ([]Result, error) {
	// chromem rejects nResults greater than the collection size.
	n := s.collection.Count()
	if n == 0 || k <= 0 {
		return nil, nil
	}
	if k < n {
		n = k
	}

	matches, err := s.collection.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, Result{
			Chunk: Chunk{
				ID:       m.ID,
				Text:     m.Content,
				Metadata: metadataFromMap(m.Metadata),
			},
			Similarity: m.Similarity,
		})
	}
	return results, nil
}

// Count reports the number of stored chunks.
func (s *Chromem) Count(_ context.Context) (int, error) {
	return s.collection.Count(), nil
}

// Name identifies the variant.
func (*Chromem) Name() string { return "chromem" }
