package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"grana/middleware"
	"grana/models"
	"grana/services"

	"github.com/gorilla/mux"
)

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var g models.Goal
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := services.CreateGoal(h.DB, userID, &g); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, g)
}

func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	progress, err := services.GetGoalProgress(h.DB, userID, id, time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	goals, err := services.ListGoals(h.DB, userID, r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, err)
		return
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	respondJSON(w, http.StatusOK, goals)
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	var body struct {
		Name                string     `json:"name"`
		TargetAmount        float64    `json:"targetAmount"`
		MonthlyContribution float64    `json:"monthlyContribution"`
		Deadline            *time.Time `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := services.UpdateGoal(h.DB, userID, id, body.Name, body.TargetAmount, body.MonthlyContribution, body.Deadline)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	if err := services.DeleteGoal(h.DB, userID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddContribution(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	goalID := mux.Vars(r)["id"]

	var c models.GoalContribution
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := services.AddContribution(h.DB, userID, goalID, &c)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"contribution": c,
		"goal":         g,
	})
}

func (h *Handler) ListContributions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	goalID := mux.Vars(r)["id"]

	contributions, err := services.ListContributions(h.DB, userID, goalID)
	if err != nil {
		respondError(w, err)
		return
	}
	if contributions == nil {
		contributions = []models.GoalContribution{}
	}
	respondJSON(w, http.StatusOK, contributions)
}

func (h *Handler) ChangeGoalStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := services.ChangeGoalStatus(h.DB, userID, id, body.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}
