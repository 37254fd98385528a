package embed

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini generates embeddings via the Gemini API.
//
// gemini-embedding-001 outputs 3072 dimensions by default; OutputDimensionality
// truncates to Dimension so vectors fit the shared schema.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini embedder. An empty API key is an initialization
// failure; the caller decides how to degrade.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("creating Gemini embedder: %w", ErrUnavailable)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Embed returns the embedding vector for text.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.model,
		genai.Text(text),
		&genai.EmbedContentConfig{OutputDimensionality: genai.Ptr(int32(Dimension))},
	)
	if err != nil {
		return nil, fmt.Errorf("embedding text: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding response from %s", g.model)
	}

	return resp.Embeddings[0].Values, nil
}

// Model returns the embedding model identifier.
func (g *Gemini) Model() string { return g.model }
