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

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := services.CreateTransaction(h.DB, userID, &t); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	t, err := services.GetTransaction(h.DB, userID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	filter, err := parseTransactionFilter(r)
	if err != nil {
		respondError(w, err)
		return
	}

	transactions, err := services.ListTransactions(h.DB, userID, filter)
	if err != nil {
		respondError(w, err)
		return
	}
	if transactions == nil {
		transactions = []models.TransactionWithCategory{}
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := services.UpdateTransaction(h.DB, userID, id, &t); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	id := mux.Vars(r)["id"]

	if err := services.DeleteTransaction(h.DB, userID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseTransactionFilter(r *http.Request) (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	q := r.URL.Query()

	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, fmt.Errorf("bad from date: %w", models.ErrInvalidArgument)
		}
		filter.From = &t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, fmt.Errorf("bad to date: %w", models.ErrInvalidArgument)
		}
		// inclusive through the end of the day
		end := t.Add(24*time.Hour - time.Second)
		filter.To = &end
	}
	filter.Type = q.Get("type")
	if c := q.Get("categoryId"); c != "" {
		id, err := strconv.Atoi(c)
		if err != nil {
			return filter, fmt.Errorf("bad categoryId: %w", models.ErrInvalidArgument)
		}
		filter.CategoryID = id
	}
	return filter, nil
}
