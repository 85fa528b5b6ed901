package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"grana/middleware"
	"grana/models"
	"grana/services"

	"github.com/gorilla/mux"
)

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var b models.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := services.CreateBudget(h.DB, userID, &b); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id, err := budgetID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	b, err := services.GetBudget(h.DB, userID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	budgets, err := services.ListBudgets(h.DB, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	respondJSON(w, http.StatusOK, budgets)
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id, err := budgetID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var b models.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := services.UpdateBudget(h.DB, userID, id, &b); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id, err := budgetID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := services.DeleteBudget(h.DB, userID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetBudgetUsage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id, err := budgetID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	usage, err := services.GetBudgetUsage(h.DB, userID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, usage)
}

func (h *Handler) GetBudgetProjection(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id, err := budgetID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	usage, projection, err := services.GetBudgetProjection(h.DB, userID, id, time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"usage":      usage,
		"projection": projection,
	})
}

func (h *Handler) ListBudgetUsages(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	usages, err := services.ListBudgetUsages(h.DB, userID, time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}
	if usages == nil {
		usages = []models.BudgetUsage{}
	}
	respondJSON(w, http.StatusOK, usages)
}

func (h *Handler) GetBudgetAlerts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	alerts, err := services.BudgetAlerts(h.DB, userID, time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

func (h *Handler) GetBudgetSuggestions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	suggestions, err := services.SuggestBudgets(h.DB, userID, time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []models.BudgetSuggestion{}
	}
	respondJSON(w, http.StatusOK, suggestions)
}

func budgetID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, fmt.Errorf("bad budget id: %w", models.ErrInvalidArgument)
	}
	return id, nil
}
