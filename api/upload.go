package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jarvis0/jarvis/internal/knowledge"
	"github.com/jarvis0/jarvis/internal/log"
)

// maxUploadBytes bounds a single document upload.
const maxUploadBytes = 32 << 20 // 32 MiB

// UploadHandler handles document ingestion.
type UploadHandler struct {
	ingestor *knowledge.Ingestor
	logger   log.Logger
}

// NewUploadHandler creates the upload handler.
func NewUploadHandler(ingestor *knowledge.Ingestor, logger log.Logger) *UploadHandler {
	return &UploadHandler{ingestor: ingestor, logger: logger}
}

// RegisterRoutes registers upload routes on the given mux.
func (h *UploadHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /upload", h.handleUpload)
}

// uploadResponse reports what an upload produced. ID is the first stored
// chunk's ID, null when nothing survived chunking.
type uploadResponse struct {
	Message string  `json:"message"`
	Chunks  int     `json:"chunks"`
	ID      *string `json:"id"`
}

// handleUpload ingests one document. It accepts a multipart form with a
// "file" field, or a raw request body with the filename in X-Filename.
func (h *UploadHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	raw, filename, err := readDocument(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.ingestor.IngestDocument(r.Context(), raw, filename)
	if err != nil {
		h.logger.Error("upload failed", "filename", filename, "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := uploadResponse{
		Message: fmt.Sprintf("Successfully processed %s", filename),
		Chunks:  result.ChunksStored,
	}
	if result.FirstChunkID != "" {
		resp.ID = &result.FirstChunkID
	}

	writeJSON(w, http.StatusOK, resp)
}

// readDocument extracts the document bytes and filename from the request.
func readDocument(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		raw, readErr := io.ReadAll(file)
		if readErr != nil {
			return nil, "", fmt.Errorf("reading uploaded file: %w", readErr)
		}
		return raw, header.Filename, nil

	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingFile):
		// Raw body fallback for clients that skip multipart encoding.
		raw, readErr := io.ReadAll(r.Body)
		if readErr != nil {
			return nil, "", fmt.Errorf("reading request body: %w", readErr)
		}
		filename := r.Header.Get("X-Filename")
		if filename == "" {
			filename = "document.txt"
		}
		return raw, filename, nil

	default:
		return nil, "", fmt.Errorf("parsing upload: %w", err)
	}
}
