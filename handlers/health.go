package handlers

import (
	"net/http"
	"time"
)

// HealthCheck reports liveness plus database reachability.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.DB.Ping(); err != nil {
		status = "database unreachable"
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]string{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
