package knowledge

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvis0/jarvis/internal/embed"
	"github.com/jarvis0/jarvis/internal/log"
	"github.com/jarvis0/jarvis/internal/testutil"
)

// axisEmbedder maps known texts to fixed unit vectors so similarity ordering
// is deterministic without a live embedding provider.
type axisEmbedder struct {
	axes map[string]int
}

func (e *axisEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	axis, ok := e.axes[text]
	if !ok {
		return nil, fmt.Errorf("no fixture vector for %q", text)
	}
	vec := make([]float32, embed.Dimension)
	vec[axis] = 1
	return vec, nil
}

func (*axisEmbedder) Model() string { return "axis-test" }

func TestPGVectorStoreIntegration(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	ctx := context.Background()

	embedder := &axisEmbedder{axes: map[string]int{
		"alpha document": 0,
		"beta document":  1,
		"gamma document": 2,
		"alpha query":    0,
	}}
	store := NewPGVector(tdb.Pool, embedder, log.NewNop())

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"alpha document", "beta document", "gamma document"} {
		chunk := Chunk{
			ID:   ChunkID(text),
			Text: text,
			Metadata: Metadata{
				Filename:  "fixtures.txt",
				Sequence:  i,
				Timestamp: now,
			},
		}
		require.NoError(t, store.Ingest(ctx, chunk))
	}

	t.Run("count", func(t *testing.T) {
		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("nearest neighbor ordering", func(t *testing.T) {
		results, err := store.Query(ctx, "alpha query", 2)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, "alpha document", results[0].Chunk.Text)
		assert.InDelta(t, 1.0, float64(results[0].Similarity), 0.001)
		assert.Greater(t, results[0].Similarity, results[1].Similarity)

		assert.Equal(t, "fixtures.txt", results[0].Chunk.Metadata.Filename)
		assert.Equal(t, 0, results[0].Chunk.Metadata.Sequence)
	})

	t.Run("reingest same text does not duplicate", func(t *testing.T) {
		chunk := Chunk{
			ID:       ChunkID("alpha document"),
			Text:     "alpha document",
			Metadata: Metadata{Filename: "other.txt", Sequence: 7, Timestamp: now},
		}
		require.NoError(t, store.Ingest(ctx, chunk))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("zero k", func(t *testing.T) {
		results, err := store.Query(ctx, "alpha query", 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
