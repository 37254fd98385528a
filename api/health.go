package api

import (
	"net/http"
	"time"

	"github.com/jarvis0/jarvis/internal/app"
	"github.com/jarvis0/jarvis/internal/config"
	"github.com/jarvis0/jarvis/internal/log"
)

// HealthHandler reports provider availability.
type HealthHandler struct {
	status app.Status
	logger log.Logger
	now    func() time.Time
}

// NewHealthHandler creates the health handler over the startup availability
// snapshot. The endpoint never touches providers.
func NewHealthHandler(status app.Status, logger log.Logger) *HealthHandler {
	return &HealthHandler{status: status, logger: logger, now: time.Now}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
}

// handleHealth returns the availability snapshot decided at startup. The
// provider flag is keyed by the active backend ("gemini" or "ollama"); the
// scripted backend reports mode "demo" instead.
func (h *HealthHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{
		"status":     "healthy",
		"vector_db":  h.status.VectorDB,
		"embeddings": h.status.EmbedderReady,
		"timestamp":  h.now().Format(time.RFC3339),
	}

	switch h.status.Provider {
	case config.ProviderGemini:
		body["gemini"] = true
	case config.ProviderOllama:
		body["ollama"] = true
	default:
		body["mode"] = "demo"
	}

	writeJSON(w, http.StatusOK, body)
}
