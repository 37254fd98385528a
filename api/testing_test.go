package api

import (
	"context"

	"github.com/jarvis0/jarvis/internal/generate"
	"github.com/jarvis0/jarvis/internal/knowledge"
)

// stubStore returns scripted retrieval results for handler tests.
type stubStore struct {
	results  []knowledge.Result
	queryErr error
	count    int
	countErr error
}

func (s *stubStore) Ingest(context.Context, knowledge.Chunk) error { return nil }

func (s *stubStore) Query(context.Context, string, int) ([]knowledge.Result, error) {
	return s.results, s.queryErr
}

func (s *stubStore) Count(context.Context) (int, error) { return s.count, s.countErr }
func (*stubStore) Name() string                         { return "stub" }

// stubGenerator returns a fixed reply.
type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) Generate(context.Context, string, string) (string, error) {
	return g.reply, g.err
}

func (*stubGenerator) Name() string { return "stub" }

var _ knowledge.Store = (*stubStore)(nil)
var _ generate.Generator = (*stubGenerator)(nil)
