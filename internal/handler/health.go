package handler

import (
	"net/http"

	"atelier/internal/httputil"
)

// HealthHandler reports liveness
type HealthHandler struct {
	backend string
}

// NewHealthHandler creates a health handler naming the active store backend
func NewHealthHandler(backend string) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"store":  h.backend,
	})
}
