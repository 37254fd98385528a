package api

import (
	"net/http"

	"github.com/jarvis0/jarvis/internal/app"
	"github.com/jarvis0/jarvis/internal/knowledge"
	"github.com/jarvis0/jarvis/internal/log"
)

// KnowledgeHandler reports knowledge base statistics.
type KnowledgeHandler struct {
	store  knowledge.Store
	status app.Status
	logger log.Logger
}

// NewKnowledgeHandler creates the knowledge stats handler.
func NewKnowledgeHandler(store knowledge.Store, status app.Status, logger log.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{store: store, status: status, logger: logger}
}

// RegisterRoutes registers knowledge routes on the given mux.
func (h *KnowledgeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /knowledge", h.handleKnowledge)
}

// knowledgeResponse describes the knowledge base. EmbeddingModel is null
// when no embedder is available.
type knowledgeResponse struct {
	TotalDocuments int     `json:"total_documents"`
	VectorDBActive bool    `json:"vector_db_active"`
	EmbeddingModel *string `json:"embedding_model"`
}

func (h *KnowledgeHandler) handleKnowledge(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count(r.Context())
	if err != nil {
		h.logger.Error("knowledge count failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := knowledgeResponse{
		TotalDocuments: count,
		VectorDBActive: h.status.VectorDB,
	}
	if h.status.EmbedderModel != "" {
		resp.EmbeddingModel = &h.status.EmbedderModel
	}

	writeJSON(w, http.StatusOK, resp)
}
