package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvis0/jarvis/internal/app"
	"github.com/jarvis0/jarvis/internal/knowledge"
	"github.com/jarvis0/jarvis/internal/log"
)

func getKnowledge(t *testing.T, store knowledge.Store, status app.Status) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	NewKnowledgeHandler(store, status, log.NewNop()).RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/knowledge", nil))
	return rec
}

func TestKnowledgeStats(t *testing.T) {
	status := app.Status{
		EmbedderReady: true,
		EmbedderModel: "nomic-embed-text",
		VectorDB:      true,
		VectorStore:   "pgvector",
	}
	rec := getKnowledge(t, &stubStore{count: 42}, status)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp knowledgeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 42, resp.TotalDocuments)
	assert.True(t, resp.VectorDBActive)
	require.NotNil(t, resp.EmbeddingModel)
	assert.Equal(t, "nomic-embed-text", *resp.EmbeddingModel)
}

func TestKnowledgeStatsDegraded(t *testing.T) {
	rec := getKnowledge(t, &stubStore{count: 3}, app.Status{})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp knowledgeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalDocuments)
	assert.False(t, resp.VectorDBActive)
	assert.Nil(t, resp.EmbeddingModel)
	assert.Contains(t, rec.Body.String(), `"embedding_model":null`)
}

func TestKnowledgeStatsCountFailure(t *testing.T) {
	rec := getKnowledge(t, &stubStore{countErr: errors.New("store offline")}, app.Status{})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body detailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Detail, "store offline")
}
