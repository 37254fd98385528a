package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvis0/jarvis/internal/app"
	"github.com/jarvis0/jarvis/internal/log"
)

func getHealth(t *testing.T, status app.Status) map[string]any {
	t.Helper()

	h := NewHealthHandler(status, log.NewNop())
	h.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthGemini(t *testing.T) {
	body := getHealth(t, app.Status{
		Provider:      "gemini",
		EmbedderReady: true,
		EmbedderModel: "gemini-embedding-001",
		VectorDB:      true,
		VectorStore:   "pgvector",
	})

	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["gemini"])
	assert.Equal(t, true, body["vector_db"])
	assert.Equal(t, true, body["embeddings"])
	assert.Equal(t, "2025-06-01T12:00:00Z", body["timestamp"])
	assert.NotContains(t, body, "ollama")
	assert.NotContains(t, body, "mode")
}

func TestHealthOllamaDegraded(t *testing.T) {
	body := getHealth(t, app.Status{Provider: "ollama"})

	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["ollama"])
	assert.Equal(t, false, body["vector_db"])
	assert.Equal(t, false, body["embeddings"])
}

func TestHealthScriptedReportsDemoMode(t *testing.T) {
	body := getHealth(t, app.Status{Provider: "scripted"})

	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "demo", body["mode"])
	assert.NotContains(t, body, "gemini")
	assert.NotContains(t, body, "ollama")
}
