package generate

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/jarvis0/jarvis/internal/log"
)

// Gemini generates replies via the hosted Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	logger log.Logger
}

// NewGemini creates a Gemini generation backend. An empty API key is an
// initialization failure; the availability probe downgrades to the scripted
// backend instead of surfacing it.
func NewGemini(ctx context.Context, apiKey, model string, logger log.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("creating Gemini backend: missing API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, logger: logger}, nil
}

// Generate calls the Gemini API. Call failures come back as a diagnostic
// reply, not an error.
func (g *Gemini) Generate(ctx context.Context, message, fullContext string) (string, error) {
	prompt := buildPrompt(message, fullContext)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.Warn("gemini call failed", "error", err)
		return fmt.Sprintf("Gemini API error: %v. Please check your API key.", err), nil
	}

	text := resp.Text()
	if text == "" {
		g.logger.Warn("gemini returned empty response", "model", g.model)
		return fmt.Sprintf("Gemini returned an empty response from %s. Try rephrasing your question.", g.model), nil
	}

	return text, nil
}

// Name identifies the variant.
func (*Gemini) Name() string { return "gemini" }
