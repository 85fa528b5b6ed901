package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"grana/models"
)

// Handler carries the database handle into every endpoint.
type Handler struct {
	DB *sql.DB
}

func New(db *sql.DB) *Handler {
	return &Handler{DB: db}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Printf("Error encoding response: %v", err)
		}
	}
}

// respondError maps the service error taxonomy onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Error(w, err.Error(), status)
}
