package services

import (
	"database/sql"
	"fmt"
	"time"

	"grana/finance"
	"grana/models"
)

// SuggestionWindowMonths is how far back the average looks when proposing
// budget amounts.
const SuggestionWindowMonths = 6

// SuggestBudgets proposes a budget per expense category from the trailing
// monthly spending average plus a safety margin. Categories with no spending
// in the window are skipped. When a budget already covers the category for
// the current date, the suggestion carries a comparison against it.
func SuggestBudgets(db *sql.DB, userID string, now time.Time) ([]models.BudgetSuggestion, error) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -SuggestionWindowMonths, 0)
	to := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Add(-time.Second)

	rows, err := db.Query(`
		SELECT t.category_id, c.name, SUM(t.amount)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ? AND t.type = ? AND t.date >= ? AND t.date <= ?
		GROUP BY t.category_id, c.name
		ORDER BY SUM(t.amount) DESC
	`, userID, models.TypeExpense, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query spending history: %w", err)
	}
	defer rows.Close()

	// Drain the history result set before touching the pool again so the
	// per-category budget lookups below never contend with the open cursor
	// for a connection.
	var suggestions []models.BudgetSuggestion
	for rows.Next() {
		var s models.BudgetSuggestion
		var total float64
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &total); err != nil {
			return nil, fmt.Errorf("failed to scan spending history: %w", err)
		}

		s.HistoricalAverage = total / SuggestionWindowMonths
		if s.HistoricalAverage <= 0 {
			continue
		}
		s.SuggestedAmount = finance.SuggestBudget(s.HistoricalAverage, finance.DefaultSuggestionMargin)
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read spending history: %w", err)
	}
	rows.Close()

	for i := range suggestions {
		existing, err := coveringBudgetAmount(db, userID, suggestions[i].CategoryID, now)
		if err != nil {
			return nil, err
		}
		if existing > 0 {
			suggestions[i].ExistingAmount = existing
			suggestions[i].Difference, suggestions[i].Assessment =
				finance.ClassifySuggestion(suggestions[i].SuggestedAmount, existing)
		}
	}
	return suggestions, nil
}

// coveringBudgetAmount finds the amount of the budget whose window contains
// now for the category, or 0 when none exists.
func coveringBudgetAmount(db *sql.DB, userID string, categoryID int, now time.Time) (float64, error) {
	var amount float64
	err := db.QueryRow(`
		SELECT amount FROM budgets
		WHERE user_id = ? AND category_id = ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date DESC
		LIMIT 1
	`, userID, categoryID, now, now).Scan(&amount)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to query covering budget: %w", err)
	}
	return amount, nil
}
