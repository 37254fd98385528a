package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jarvis0/jarvis/internal/log"
)

// Ollama generates replies via a local Ollama server.
type Ollama struct {
	baseURL string
	model   string
	client  *http.Client
	logger  log.Logger
}

// NewOllama creates an Ollama generation backend.
func NewOllama(baseURL, model string, logger log.Logger) *Ollama {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	return &Ollama{
		baseURL: baseURL,
		model:   model,
		// Local inference can be slow on first load; generous timeout.
		client: &http.Client{Timeout: 300 * time.Second},
		logger: logger,
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate calls Ollama's generate API. Call failures come back as a
// diagnostic reply, not an error.
func (o *Ollama) Generate(ctx context.Context, message, fullContext string) (string, error) {
	prompt := buildPrompt(message, fullContext)

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		o.logger.Warn("ollama call failed", "error", err)
		return o.diagnostic(err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		o.logger.Warn("ollama returned non-200", "status", resp.StatusCode)
		return o.diagnostic(fmt.Errorf("status %d", resp.StatusCode)), nil
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		o.logger.Warn("ollama response decode failed", "error", err)
		return o.diagnostic(err), nil
	}

	return genResp.Response, nil
}

// diagnostic builds the degraded-service reply shown in place of an answer.
func (o *Ollama) diagnostic(err error) string {
	return fmt.Sprintf("Local model error: %v. Make sure Ollama is running with 'ollama serve' and that you have pulled the model with 'ollama pull %s'.", err, o.model)
}

// Name identifies the variant.
func (*Ollama) Name() string { return "ollama" }
