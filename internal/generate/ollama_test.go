package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvis0/jarvis/internal/log"
)

func TestOllamaGenerate(t *testing.T) {
	var gotReq ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "the answer", Done: true})
	}))
	defer srv.Close()

	gen := NewOllama(srv.URL, "llama3.2", log.NewNop())
	reply, err := gen.Generate(context.Background(), "question?", "Context: facts.")
	require.NoError(t, err)

	assert.Equal(t, "the answer", reply)
	assert.Equal(t, "llama3.2", gotReq.Model)
	assert.False(t, gotReq.Stream)
	assert.Equal(t, "Context: facts.\n\nUser: question?\nAssistant:", gotReq.Prompt)
}

func TestOllamaGenerateServerErrorYieldsDiagnostic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusInternalServerError)
	}))
	defer srv.Close()

	gen := NewOllama(srv.URL, "llama3.2", log.NewNop())
	reply, err := gen.Generate(context.Background(), "question?", "")

	// Provider failures degrade to a diagnostic reply, never an error.
	require.NoError(t, err)
	assert.Contains(t, reply, "Local model error")
	assert.Contains(t, reply, "ollama pull llama3.2")
}

func TestOllamaGenerateUnreachableYieldsDiagnostic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	gen := NewOllama(srv.URL, "llama3.2", log.NewNop())
	reply, err := gen.Generate(context.Background(), "question?", "")

	require.NoError(t, err)
	assert.Contains(t, reply, "Local model error")
	assert.Contains(t, reply, "ollama serve")
}

func TestOllamaDefaults(t *testing.T) {
	gen := NewOllama("", "", log.NewNop())
	assert.Equal(t, "http://localhost:11434", gen.baseURL)
	assert.Equal(t, "llama3.2", gen.model)
	assert.Equal(t, "ollama", gen.Name())
}
