package knowledge

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMemory(t *testing.T, texts ...string) *Memory {
	t.Helper()
	m := NewMemory()
	for _, text := range texts {
		require.NoError(t, m.Ingest(context.Background(), Chunk{ID: ChunkID(text), Text: text}))
	}
	return m
}

func TestMemoryQuery(t *testing.T) {
	m := seedMemory(t,
		"The quick brown fox jumps over the lazy dog",
		"Deployment instructions for the staging cluster",
		"FOX hunting was banned in 2004",
	)

	tests := []struct {
		name      string
		query     string
		k         int
		wantTexts []string
	}{
		{
			name:      "single token matches case-insensitively",
			query:     "Fox",
			k:         10,
			wantTexts: []string{"The quick brown fox jumps over the lazy dog", "FOX hunting was banned in 2004"},
		},
		{
			name:      "any token matches",
			query:     "staging zebra",
			k:         10,
			wantTexts: []string{"Deployment instructions for the staging cluster"},
		},
		{
			name:      "results come back in storage order capped at k",
			query:     "the",
			k:         2,
			wantTexts: []string{"The quick brown fox jumps over the lazy dog", "Deployment instructions for the staging cluster"},
		},
		{
			name:      "no token matches",
			query:     "zebra",
			k:         10,
			wantTexts: nil,
		},
		{
			name:      "whitespace-only query matches nothing",
			query:     "   \t\n",
			k:         10,
			wantTexts: nil,
		},
		{
			name:      "zero k yields nothing",
			query:     "fox",
			k:         0,
			wantTexts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := m.Query(context.Background(), tt.query, tt.k)
			require.NoError(t, err)

			var got []string
			for _, r := range results {
				got = append(got, r.Chunk.Text)
				assert.Zero(t, r.Similarity, "keyword store reports no score")
			}
			assert.Equal(t, tt.wantTexts, got)
		})
	}
}

func TestMemoryCount(t *testing.T) {
	m := seedMemory(t, "one", "two", "three")

	count, err := m.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMemoryConcurrentIngest(t *testing.T) {
	const n = 100
	m := NewMemory()

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text := "chunk " + strconv.Itoa(i)
			_ = m.Ingest(context.Background(), Chunk{ID: ChunkID(text), Text: text})
		}()
	}
	wg.Wait()

	// Concurrent appends must not lose or duplicate chunks.
	count, err := m.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, n, count)
}

func TestMemoryName(t *testing.T) {
	assert.Equal(t, "memory", NewMemory().Name())
}
