package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"grana/finance"
	"grana/models"
)

// CreateBudget validates and inserts a budget. Monthly and annual windows
// are derived from the start date; only custom budgets carry their own end.
func CreateBudget(db *sql.DB, userID string, b *models.Budget) error {
	if err := validateBudget(db, userID, b); err != nil {
		return err
	}
	if err := checkBudgetOverlap(db, userID, b.CategoryID, b.StartDate, b.EndDate, 0); err != nil {
		return err
	}

	now := time.Now().UTC()
	b.UserID = userID
	b.CreatedAt = now
	b.UpdatedAt = now

	result, err := db.Exec(`
		INSERT INTO budgets (user_id, category_id, amount, period, start_date, end_date, rollover, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.UserID, b.CategoryID, b.Amount, b.Period, b.StartDate, b.EndDate, b.Rollover, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert budget: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get budget id: %w", err)
	}
	b.ID = int(id)
	return nil
}

// GetBudget loads one of the user's budgets.
func GetBudget(db *sql.DB, userID string, id int) (*models.Budget, error) {
	var b models.Budget
	err := db.QueryRow(`
		SELECT id, user_id, category_id, amount, period, start_date, end_date, rollover, created_at, updated_at
		FROM budgets
		WHERE id = ?
	`, id).Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Period,
		&b.StartDate, &b.EndDate, &b.Rollover, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("budget %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	if b.UserID != userID {
		return nil, fmt.Errorf("budget %d belongs to another user: %w", id, models.ErrPermissionDenied)
	}
	return &b, nil
}

// ListBudgets returns all of the user's budgets, newest window first.
func ListBudgets(db *sql.DB, userID string) ([]models.Budget, error) {
	rows, err := db.Query(`
		SELECT id, user_id, category_id, amount, period, start_date, end_date, rollover, created_at, updated_at
		FROM budgets
		WHERE user_id = ?
		ORDER BY start_date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Period,
			&b.StartDate, &b.EndDate, &b.Rollover, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// UpdateBudget rewrites a budget after the same validation as create,
// ignoring the budget's own row in the overlap check.
func UpdateBudget(db *sql.DB, userID string, id int, b *models.Budget) error {
	if _, err := GetBudget(db, userID, id); err != nil {
		return err
	}
	if err := validateBudget(db, userID, b); err != nil {
		return err
	}
	if err := checkBudgetOverlap(db, userID, b.CategoryID, b.StartDate, b.EndDate, id); err != nil {
		return err
	}

	b.ID = id
	b.UserID = userID
	b.UpdatedAt = time.Now().UTC()

	_, err := db.Exec(`
		UPDATE budgets
		SET category_id = ?, amount = ?, period = ?, start_date = ?, end_date = ?, rollover = ?, updated_at = ?
		WHERE id = ?
	`, b.CategoryID, b.Amount, b.Period, b.StartDate, b.EndDate, b.Rollover, b.UpdatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return nil
}

// DeleteBudget removes one of the user's budgets and its notifications.
func DeleteBudget(db *sql.DB, userID string, id int) error {
	if _, err := GetBudget(db, userID, id); err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM notifications WHERE budget_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete budget notifications: %w", err)
	}
	if _, err := db.Exec("DELETE FROM budgets WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

// BudgetSpent sums the expense transactions inside the budget window for the
// budget's category and its subcategories.
func BudgetSpent(db *sql.DB, b *models.Budget) (float64, error) {
	var spent float64
	err := db.QueryRow(`
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ?
		  AND type = 'expense'
		  AND date >= ? AND date <= ?
		  AND category_id IN (SELECT id FROM categories WHERE id = ? OR parent_id = ?)
	`, b.UserID, b.StartDate, b.EndDate, b.CategoryID, b.CategoryID).Scan(&spent)
	if err != nil {
		return 0, fmt.Errorf("failed to sum budget spend: %w", err)
	}
	return spent, nil
}

// GetBudgetUsage loads a budget with its derived usage figures.
func GetBudgetUsage(db *sql.DB, userID string, id int) (*models.BudgetUsage, error) {
	b, err := GetBudget(db, userID, id)
	if err != nil {
		return nil, err
	}
	return budgetUsage(db, b)
}

// GetBudgetProjection loads a budget's usage plus the linear overspend
// projection for its window.
func GetBudgetProjection(db *sql.DB, userID string, id int, now time.Time) (*models.BudgetUsage, *finance.Projection, error) {
	u, err := GetBudgetUsage(db, userID, id)
	if err != nil {
		return nil, nil, err
	}
	p := finance.CalculateProjection(now, u.StartDate, u.EndDate, u.Spent, u.Amount)
	return u, &p, nil
}

// ListBudgetUsages computes usage for every budget whose window contains the
// given instant.
func ListBudgetUsages(db *sql.DB, userID string, now time.Time) ([]models.BudgetUsage, error) {
	budgets, err := ListBudgets(db, userID)
	if err != nil {
		return nil, err
	}

	var usages []models.BudgetUsage
	for i := range budgets {
		b := budgets[i]
		if now.Before(b.StartDate) || now.After(b.EndDate) {
			continue
		}
		u, err := budgetUsage(db, &b)
		if err != nil {
			return nil, err
		}
		usages = append(usages, *u)
	}
	return usages, nil
}

func budgetUsage(db *sql.DB, b *models.Budget) (*models.BudgetUsage, error) {
	spent, err := BudgetSpent(db, b)
	if err != nil {
		return nil, err
	}

	var categoryName string
	if err := db.QueryRow("SELECT name FROM categories WHERE id = ?", b.CategoryID).Scan(&categoryName); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query budget category: %w", err)
	}

	u := finance.CalculateUsage(spent, b.Amount)
	return &models.BudgetUsage{
		Budget:       *b,
		CategoryName: categoryName,
		Spent:        u.Spent,
		Remaining:    u.Remaining,
		Percentage:   u.Percentage,
		Exceeded:     u.Exceeded,
		AlertLevel:   finance.AlertLevel(u.Percentage),
	}, nil
}

func validateBudget(db *sql.DB, userID string, b *models.Budget) error {
	if b.Amount <= 0 {
		return fmt.Errorf("budget amount must be positive: %w", models.ErrInvalidArgument)
	}

	category, err := GetCategory(db, userID, b.CategoryID)
	if err != nil {
		return err
	}
	if category.Type != models.TypeExpense {
		return fmt.Errorf("budgets only apply to expense categories: %w", models.ErrInvalidArgument)
	}

	if b.StartDate.IsZero() {
		return fmt.Errorf("budget start date is required: %w", models.ErrInvalidArgument)
	}
	b.StartDate = startOfDay(b.StartDate)

	switch b.Period {
	case models.PeriodMonthly:
		// last day of the start month
		b.EndDate = time.Date(b.StartDate.Year(), b.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, -1)
	case models.PeriodAnnual:
		b.EndDate = time.Date(b.StartDate.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	case models.PeriodCustom:
		if b.EndDate.IsZero() {
			return fmt.Errorf("custom budgets need an end date: %w", models.ErrInvalidArgument)
		}
		b.EndDate = startOfDay(b.EndDate)
		if !b.EndDate.After(b.StartDate) {
			return fmt.Errorf("budget end date must be after start date: %w", models.ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("unknown budget period %q: %w", b.Period, models.ErrInvalidArgument)
	}
	// windows are inclusive through the end of the last day
	b.EndDate = b.EndDate.Add(24*time.Hour - time.Second)
	return nil
}

// checkBudgetOverlap rejects a second budget for the same category whose
// window intersects an existing one.
func checkBudgetOverlap(db *sql.DB, userID string, categoryID int, start, end time.Time, excludeID int) error {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM budgets
		WHERE user_id = ? AND category_id = ? AND id != ?
		  AND start_date <= ? AND end_date >= ?
	`, userID, categoryID, excludeID, end, start).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check budget overlap: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("a budget for this category already covers part of the period: %w", models.ErrConflict)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
