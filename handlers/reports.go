package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"grana/middleware"
	"grana/models"
	"grana/services"
)

func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	year, month, err := yearMonthParams(r, "year", "month")
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := services.MonthlyReport(h.DB, userID, year, month)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) CategoryReport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	from, to, err := windowParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := services.CategoryReport(h.DB, userID, from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) EvolutionReport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	months := 12
	if m := r.URL.Query().Get("months"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil {
			respondError(w, fmt.Errorf("bad months parameter: %w", models.ErrInvalidArgument))
			return
		}
		months = parsed
	}

	report, err := services.EvolutionReport(h.DB, userID, months, time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) ComparativeReport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	priorYear, priorMonth, err := yearMonthParams(r, "priorYear", "priorMonth")
	if err != nil {
		respondError(w, err)
		return
	}
	currentYear, currentMonth, err := yearMonthParams(r, "currentYear", "currentMonth")
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := services.ComparativeReport(h.DB, userID, priorYear, priorMonth, currentYear, currentMonth)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) PatternReport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	from, to, err := windowParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := services.PatternReport(h.DB, userID, from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) TopReport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	from, to, err := windowParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			respondError(w, fmt.Errorf("bad limit parameter: %w", models.ErrInvalidArgument))
			return
		}
		limit = parsed
	}

	report, err := services.TopReport(h.DB, userID, from, to, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func yearMonthParams(r *http.Request, yearKey, monthKey string) (int, int, error) {
	year, err := strconv.Atoi(r.URL.Query().Get(yearKey))
	if err != nil {
		return 0, 0, fmt.Errorf("bad %s parameter: %w", yearKey, models.ErrInvalidArgument)
	}
	month, err := strconv.Atoi(r.URL.Query().Get(monthKey))
	if err != nil {
		return 0, 0, fmt.Errorf("bad %s parameter: %w", monthKey, models.ErrInvalidArgument)
	}
	return year, month, nil
}

func windowParams(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()

	from, err := time.Parse("2006-01-02", q.Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad from date: %w", models.ErrInvalidArgument)
	}
	to, err := time.Parse("2006-01-02", q.Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad to date: %w", models.ErrInvalidArgument)
	}
	// inclusive through the end of the last day
	return from, to.Add(24*time.Hour - time.Second), nil
}
