package api

import (
	"encoding/json"
	"net/http"

	"github.com/jarvis0/jarvis/internal/chat"
	"github.com/jarvis0/jarvis/internal/log"
)

// ChatHandler handles the chat endpoint.
type ChatHandler struct {
	service *chat.Service
	logger  log.Logger
}

// NewChatHandler creates the chat handler.
func NewChatHandler(service *chat.Service, logger log.Logger) *ChatHandler {
	return &ChatHandler{service: service, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /chat", h.handleChat)
}

// handleChat runs one chat turn.
//
// Request body: {"message": "...", "history": [{"role": "...", "content": "..."}]}
// Response: {"response": "...", "sources": ["..."] | omitted}
func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chat.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Handle(r.Context(), req)
	if err != nil {
		h.logger.Error("chat turn failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
