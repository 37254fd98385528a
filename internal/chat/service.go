package chat

import (
	"context"
	"fmt"

	"github.com/jarvis0/jarvis/internal/generate"
	"github.com/jarvis0/jarvis/internal/knowledge"
	"github.com/jarvis0/jarvis/internal/log"
)

// sourceExcerptLen bounds each source excerpt returned with an answer.
const sourceExcerptLen = 100

// Request is one chat turn from the caller.
type Request struct {
	Message string    `json:"message"`
	History []Message `json:"history"`
}

// Response is the generated answer plus the source excerpts that grounded
// it. Sources is omitted entirely when retrieval found nothing.
type Response struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources,omitempty"`
}

// Service orchestrates one chat turn: retrieve, assemble, generate, shape.
type Service struct {
	store  knowledge.Store
	gen    generate.Generator
	topK   int
	logger log.Logger
}

// NewService creates the chat orchestrator.
func NewService(store knowledge.Store, gen generate.Generator, topK int, logger log.Logger) *Service {
	return &Service{store: store, gen: gen, topK: topK, logger: logger}
}

// Handle runs one chat turn. Provider-level failures have already been
// converted to fallback values by the components, so an error here is
// genuinely exceptional and surfaces to the caller as a server error.
// Nothing is retried.
func (s *Service) Handle(ctx context.Context, req Request) (Response, error) {
	texts := s.retrieve(ctx, req.Message)

	fullContext := Assemble(req.Message, texts, req.History)

	reply, err := s.gen.Generate(ctx, req.Message, fullContext)
	if err != nil {
		return Response{}, fmt.Errorf("generating response: %w", err)
	}

	var sources []string
	for _, text := range texts {
		sources = append(sources, excerpt(text))
	}

	return Response{Response: reply, Sources: sources}, nil
}

// retrieve asks the knowledge store for grounding context. It never fails:
// store errors degrade to "no context found".
func (s *Service) retrieve(ctx context.Context, query string) []string {
	results, err := s.store.Query(ctx, query, s.topK)
	if err != nil {
		s.logger.Warn("retrieval failed, answering without context", "error", err)
		return nil
	}
	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Chunk.Text)
	}
	return texts
}

// excerpt truncates a retrieved text to sourceExcerptLen characters and
// appends an ellipsis marker.
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) > sourceExcerptLen {
		runes = runes[:sourceExcerptLen]
	}
	return string(runes) + "..."
}
