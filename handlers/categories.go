package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"grana/middleware"
	"grana/models"
	"grana/services"

	"github.com/gorilla/mux"
)

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := services.CreateCategory(h.DB, userID, &c); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	categories, err := services.ListCategories(h.DB, userID, r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id, err := categoryID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var body struct {
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := services.UpdateCategory(h.DB, userID, id, body.Name, body.Icon, body.Color)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id, err := categoryID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := services.DeleteCategory(h.DB, userID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func categoryID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, fmt.Errorf("bad category id: %w", models.ErrInvalidArgument)
	}
	return id, nil
}
