package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON writes a JSON response with the given status code. If encoding
// fails after WriteHeader the status is already on the wire; the error is
// logged and the body left short.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// detailResponse is the error body shape: a single human-readable detail
// string. Every non-2xx response uses it.
type detailResponse struct {
	Detail string `json:"detail"`
}

// writeDetail writes the standard error response.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}
