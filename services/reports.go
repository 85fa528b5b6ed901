package services

import (
	"database/sql"
	"fmt"
	"time"

	"grana/models"
	"grana/reports"
)

// fetchReportRows loads the user's transactions joined with category data for
// an inclusive [from, to] window. Report builders work on this slice only.
func fetchReportRows(db *sql.DB, userID string, from, to time.Time) ([]models.TransactionWithCategory, error) {
	rows, err := db.Query(`
		SELECT t.id, t.user_id, t.category_id, t.type, t.amount, t.description, t.date, t.created_at, t.updated_at,
		       c.name, c.type, c.icon, c.color
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ? AND t.date >= ? AND t.date <= ?
		ORDER BY t.date ASC
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query report rows: %w", err)
	}
	defer rows.Close()

	var result []models.TransactionWithCategory
	for rows.Next() {
		tc, err := scanTransactionWithCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *tc)
	}
	return result, rows.Err()
}

func monthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// MonthlyReport builds the income/expense summary for one calendar month.
func MonthlyReport(db *sql.DB, userID string, year int, month int) (*models.Report, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d is out of range: %w", month, models.ErrInvalidArgument)
	}
	if year < 1 {
		return nil, fmt.Errorf("year %d is out of range: %w", year, models.ErrInvalidArgument)
	}

	start, end := monthWindow(year, time.Month(month))
	rows, err := fetchReportRows(db, userID, start, end)
	if err != nil {
		return nil, err
	}
	r := reports.Monthly(year, time.Month(month), rows)
	return &r, nil
}

// CategoryReport breaks a date window down per category.
func CategoryReport(db *sql.DB, userID string, from, to time.Time) (*models.Report, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("report window ends before it starts: %w", models.ErrInvalidArgument)
	}
	rows, err := fetchReportRows(db, userID, from, to)
	if err != nil {
		return nil, err
	}
	r := reports.ByCategory(models.Period{Start: from, End: to}, rows)
	return &r, nil
}

// EvolutionReport tracks month-over-month balances across a trailing window.
func EvolutionReport(db *sql.DB, userID string, months int, now time.Time) (*models.Report, error) {
	if months < 2 || months > 60 {
		return nil, fmt.Errorf("evolution window must span 2 to 60 months: %w", models.ErrInvalidArgument)
	}

	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0).Add(-time.Second)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	rows, err := fetchReportRows(db, userID, start, end)
	if err != nil {
		return nil, err
	}
	r := reports.Evolution(now, months, rows)
	return &r, nil
}

// ComparativeReport contrasts two calendar months side by side.
func ComparativeReport(db *sql.DB, userID string, priorYear, priorMonth, currentYear, currentMonth int) (*models.Report, error) {
	if priorMonth < 1 || priorMonth > 12 || currentMonth < 1 || currentMonth > 12 {
		return nil, fmt.Errorf("month out of range: %w", models.ErrInvalidArgument)
	}

	priorStart, priorEnd := monthWindow(priorYear, time.Month(priorMonth))
	currentStart, currentEnd := monthWindow(currentYear, time.Month(currentMonth))

	priorRows, err := fetchReportRows(db, userID, priorStart, priorEnd)
	if err != nil {
		return nil, err
	}
	currentRows, err := fetchReportRows(db, userID, currentStart, currentEnd)
	if err != nil {
		return nil, err
	}

	prior := models.Period{Start: priorStart, End: priorEnd, Label: priorStart.Format("2006-01")}
	current := models.Period{Start: currentStart, End: currentEnd, Label: currentStart.Format("2006-01")}
	r := reports.Comparative(prior, current, priorRows, currentRows)
	return &r, nil
}

// PatternReport surfaces spending habits over a date window.
func PatternReport(db *sql.DB, userID string, from, to time.Time) (*models.Report, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("report window ends before it starts: %w", models.ErrInvalidArgument)
	}
	rows, err := fetchReportRows(db, userID, from, to)
	if err != nil {
		return nil, err
	}
	r := reports.Pattern(models.Period{Start: from, End: to}, rows)
	return &r, nil
}

// TopReport lists the largest transactions of each type in a window.
func TopReport(db *sql.DB, userID string, from, to time.Time, n int) (*models.Report, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("report window ends before it starts: %w", models.ErrInvalidArgument)
	}
	if n < 1 {
		n = 10
	}
	rows, err := fetchReportRows(db, userID, from, to)
	if err != nil {
		return nil, err
	}
	r := reports.Top(models.Period{Start: from, End: to}, n, rows)
	return &r, nil
}
