package knowledge

import (
	"context"
	"strings"
	"time"

	"github.com/jarvis0/jarvis/internal/log"
)

// Ingestor splits uploaded documents into fixed-size chunks and writes them
// through the active store.
type Ingestor struct {
	store     Store
	chunkSize int
	logger    log.Logger
	now       func() time.Time
}

// NewIngestor creates an ingestion pipeline writing to store with the given
// chunk size (in characters).
func NewIngestor(store Store, chunkSize int, logger log.Logger) *Ingestor {
	return &Ingestor{
		store:     store,
		chunkSize: chunkSize,
		logger:    logger,
		now:       time.Now,
	}
}

// IngestResult reports what a document upload produced.
type IngestResult struct {
	ChunksStored int
	FirstChunkID string // empty when nothing survived chunking
}

// IngestDocument decodes raw bytes as text (replacing undecodable sequences),
// windows it into contiguous non-overlapping chunks, and stores every window
// that is not pure whitespace. The sequence index in chunk metadata counts
// windows, not stored chunks, so it stays stable when blank windows are
// dropped.
func (i *Ingestor) IngestDocument(ctx context.Context, raw []byte, filename string) (IngestResult, error) {
	text := strings.ToValidUTF8(string(raw), "�")
	windows := splitWindows(text, i.chunkSize)

	var result IngestResult
	timestamp := i.now()

	for seq, window := range windows {
		if strings.TrimSpace(window) == "" {
			continue
		}

		chunk := Chunk{
			ID:   ChunkID(window),
			Text: window,
			Metadata: Metadata{
				Filename:  filename,
				Sequence:  seq,
				Timestamp: timestamp,
			},
		}

		if err := i.store.Ingest(ctx, chunk); err != nil {
			// Only the bare memory store can reach here, and it never
			// fails; vector variants soft-fail inside Fallback.
			i.logger.Warn("chunk not stored", "id", chunk.ID, "error", err)
			continue
		}

		if result.ChunksStored == 0 {
			result.FirstChunkID = chunk.ID
		}
		result.ChunksStored++
	}

	i.logger.Info("document ingested",
		"filename", filename,
		"windows", len(windows),
		"stored", result.ChunksStored,
		"store", i.store.Name())

	return result, nil
}

// splitWindows cuts text into contiguous rune windows of at most size
// characters; the last window may be shorter. Concatenating the windows in
// order reproduces the input exactly.
func splitWindows(text string, size int) []string {
	if size <= 0 || text == "" {
		return nil
	}
	runes := []rune(text)
	windows := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		windows = append(windows, string(runes[start:end]))
	}
	return windows
}
