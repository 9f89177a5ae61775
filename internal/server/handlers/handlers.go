// Package handlers implements the HTTP endpoints of the POS server.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fourone/pos/pkg/api"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a well-formed error body.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, api.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}, status)
}
