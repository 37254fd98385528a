package knowledge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/jarvis0/jarvis/internal/embed"
	"github.com/jarvis0/jarvis/internal/log"
)

// PGVector stores chunks in PostgreSQL with pgvector cosine search.
//
// IDs are content-addressed, so ingest uses UPSERT and identical text never
// duplicates. Safe for concurrent use; concurrency control lives in the
// database.
type PGVector struct {
	pool     *pgxpool.Pool
	embedder embed.Embedder
	logger   log.Logger
}

// NewPool creates a pgx connection pool with pgvector types registered,
// and verifies connectivity with a ping.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

// NewPGVector creates a pgvector-backed store.
func NewPGVector(pool *pgxpool.Pool, embedder embed.Embedder, logger log.Logger) *PGVector {
	return &PGVector{pool: pool, embedder: embedder, logger: logger}
}

const upsertChunkSQL = `INSERT INTO chunks (id, content, embedding, metadata, created_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET content = EXCLUDED.content, embedding = EXCLUDED.embedding, metadata = EXCLUDED.metadata`

const searchChunksSQL = `SELECT id, content, metadata, 1 - (embedding <=> $1) AS similarity
	FROM chunks
	ORDER BY embedding <=> $1
	LIMIT $2`

// Ingest embeds the chunk text and upserts it keyed by content hash.
func (s *PGVector) Ingest(ctx context.Context, chunk Chunk) error {
	vec, err := s.embedder.Embed(ctx, chunk.Text)
	if err != nil {
		return fmt.Errorf("embedding chunk %q: %w", chunk.ID, err)
	}

	metadataJSON, err := json.Marshal(chunk.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	_, err = s.pool.Exec(ctx, upsertChunkSQL,
		chunk.ID, chunk.Text, pgvector.NewVector(vec), metadataJSON, chunk.Metadata.Timestamp)
	if err != nil {
		return fmt.Errorf("upserting chunk %q: %w", chunk.ID, err)
	}

	s.logger.Debug("chunk stored", "id", chunk.ID, "length", len(chunk.Text))
	return nil
}

// Query embeds the query text and returns the k nearest chunks by cosine
// similarity, most similar first.
func (s *PGVector) Query(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		return nil, nil
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	rows, err := s.pool.Query(ctx, searchChunksSQL, pgvector.NewVector(vec), k)
	if err != nil {
		return nil, fmt.Errorf("searching chunks: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			chunk        Chunk
			metadataJSON []byte
			similarity   float64
		)
		if err := rows.Scan(&chunk.ID, &chunk.Text, &metadataJSON, &similarity); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		if err := json.Unmarshal(metadataJSON, &chunk.Metadata); err != nil {
			s.logger.Warn("failed to parse chunk metadata", "id", chunk.ID, "error", err)
		}
		results = append(results, Result{Chunk: chunk, Similarity: float32(similarity)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading chunk rows: %w", err)
	}
	return results, nil
}

// Count reports the number of stored chunks.
func (s *PGVector) Count(ctx context.Context) (int, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM chunks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return int(count), nil
}

// Name identifies the variant.
func (*PGVector) Name() string { return "pgvector" }
