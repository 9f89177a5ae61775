package handlers

import (
	"net/http"

	"github.com/fourone/pos/pkg/api"
)

// HealthHandler serves the reachability probe the offline clients poll.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.HealthResponse{Status: "ok", Version: h.version}, http.StatusOK)
}
