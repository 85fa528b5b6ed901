package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"grana/finance"
	"grana/models"

	"github.com/google/uuid"
)

// GoalProgress is a goal bundled with its derived progress figures.
type GoalProgress struct {
	Goal     models.Goal                 `json:"goal"`
	Progress finance.Progress            `json:"progress"`
	Estimate *finance.CompletionEstimate `json:"estimate,omitempty"`
	Deadline *finance.DeadlineStatus     `json:"deadline,omitempty"`
}

// CreateGoal validates and inserts a savings goal. Goals start active with a
// zero balance.
func CreateGoal(db *sql.DB, userID string, g *models.Goal) error {
	if len(g.Name) < 3 {
		return fmt.Errorf("goal name needs at least 3 characters: %w", models.ErrInvalidArgument)
	}
	if g.TargetAmount <= 0 {
		return fmt.Errorf("goal target must be positive: %w", models.ErrInvalidArgument)
	}
	if g.MonthlyContribution < 0 {
		return fmt.Errorf("monthly contribution cannot be negative: %w", models.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	g.ID = uuid.NewString()
	g.UserID = userID
	g.CurrentAmount = 0
	g.Status = models.GoalActive
	g.CompletedAt = nil
	g.CreatedAt = now
	g.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO goals (id, user_id, name, target_amount, current_amount, monthly_contribution, deadline, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?, ?)
	`, g.ID, g.UserID, g.Name, g.TargetAmount, g.MonthlyContribution, g.Deadline, g.Status, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// GetGoal loads one of the user's goals.
func GetGoal(db *sql.DB, userID, id string) (*models.Goal, error) {
	return getGoalTx(db, userID, id)
}

// querier covers both *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func getGoalTx(q querier, userID, id string) (*models.Goal, error) {
	var g models.Goal
	var deadline, completedAt sql.NullTime

	err := q.QueryRow(`
		SELECT id, user_id, name, target_amount, current_amount, monthly_contribution, deadline, status, completed_at, created_at, updated_at
		FROM goals
		WHERE id = ?
	`, id).Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
		&g.MonthlyContribution, &deadline, &g.Status, &completedAt, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("goal %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query goal: %w", err)
	}

	if deadline.Valid {
		d := deadline.Time
		g.Deadline = &d
	}
	if completedAt.Valid {
		c := completedAt.Time
		g.CompletedAt = &c
	}
	if g.UserID != userID {
		return nil, fmt.Errorf("goal %s belongs to another user: %w", id, models.ErrPermissionDenied)
	}
	return &g, nil
}

// ListGoals returns the user's goals, optionally filtered by status.
func ListGoals(db *sql.DB, userID, status string) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, monthly_contribution, deadline, status, completed_at, created_at, updated_at
		FROM goals
		WHERE user_id = ?
	`
	args := []interface{}{userID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		var deadline, completedAt sql.NullTime
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&g.MonthlyContribution, &deadline, &g.Status, &completedAt, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if deadline.Valid {
			d := deadline.Time
			g.Deadline = &d
		}
		if completedAt.Valid {
			c := completedAt.Time
			g.CompletedAt = &c
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateGoal rewrites a goal's plan fields. Balance and status are only
// changed through contributions and status transitions.
func UpdateGoal(db *sql.DB, userID, id string, name string, target, monthly float64, deadline *time.Time) (*models.Goal, error) {
	g, err := GetGoal(db, userID, id)
	if err != nil {
		return nil, err
	}
	if len(name) < 3 {
		return nil, fmt.Errorf("goal name needs at least 3 characters: %w", models.ErrInvalidArgument)
	}
	if target <= 0 {
		return nil, fmt.Errorf("goal target must be positive: %w", models.ErrInvalidArgument)
	}
	if monthly < 0 {
		return nil, fmt.Errorf("monthly contribution cannot be negative: %w", models.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	_, err = db.Exec(`
		UPDATE goals
		SET name = ?, target_amount = ?, monthly_contribution = ?, deadline = ?, updated_at = ?
		WHERE id = ?
	`, name, target, monthly, deadline, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	g.Name = name
	g.TargetAmount = target
	g.MonthlyContribution = monthly
	g.Deadline = deadline
	g.UpdatedAt = now
	return g, nil
}

// DeleteGoal removes a goal; its contribution ledger cascades with it.
func DeleteGoal(db *sql.DB, userID, id string) error {
	if _, err := GetGoal(db, userID, id); err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM goals WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

// AddContribution appends a ledger entry and updates the goal balance in a
// single transaction; both succeed or both roll back. Crossing the target
// completes the goal and stamps completed_at once.
func AddContribution(db *sql.DB, userID, goalID string, c *models.GoalContribution) (*models.Goal, error) {
	if c.Amount == 0 {
		return nil, fmt.Errorf("contribution amount cannot be zero: %w", models.ErrInvalidArgument)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	g, err := getGoalTx(tx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if g.Status != models.GoalActive {
		return nil, fmt.Errorf("goal %s is %s, contributions need an active goal: %w",
			goalID, g.Status, models.ErrInvalidState)
	}

	newBalance := g.CurrentAmount + c.Amount
	if newBalance < 0 {
		return nil, fmt.Errorf("withdrawal exceeds goal balance: %w", models.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.GoalID = goalID
	if c.Date.IsZero() {
		c.Date = now
	}
	c.CreatedAt = now

	_, err = tx.Exec(`
		INSERT INTO goal_contributions (id, goal_id, amount, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.GoalID, c.Amount, c.Description, c.Date, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contribution: %w", err)
	}

	g.CurrentAmount = newBalance
	g.UpdatedAt = now
	if newBalance >= g.TargetAmount {
		g.Status = models.GoalCompleted
		if g.CompletedAt == nil {
			g.CompletedAt = &now
		}
	}

	_, err = tx.Exec(`
		UPDATE goals
		SET current_amount = ?, status = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`, g.CurrentAmount, g.Status, g.CompletedAt, g.UpdatedAt, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit contribution: %w", err)
	}
	return g, nil
}

// ListContributions returns a goal's ledger, newest first.
func ListContributions(db *sql.DB, userID, goalID string) ([]models.GoalContribution, error) {
	if _, err := GetGoal(db, userID, goalID); err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT id, goal_id, amount, description, date, created_at
		FROM goal_contributions
		WHERE goal_id = ?
		ORDER BY date DESC, created_at DESC
	`, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions: %w", err)
	}
	defer rows.Close()

	var contributions []models.GoalContribution
	for rows.Next() {
		var c models.GoalContribution
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.GoalID, &c.Amount, &description, &c.Date, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		c.Description = description.String
		contributions = append(contributions, c)
	}
	return contributions, rows.Err()
}

// ChangeGoalStatus applies a manual lifecycle transition. Valid moves:
// active -> cancelled, active -> completed, and reactivation of a completed
// or cancelled goal back to active (clearing completed_at).
func ChangeGoalStatus(db *sql.DB, userID, id, newStatus string) (*models.Goal, error) {
	g, err := GetGoal(db, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch newStatus {
	case models.GoalActive:
		if g.Status == models.GoalActive {
			return nil, fmt.Errorf("goal is already active: %w", models.ErrInvalidState)
		}
		g.CompletedAt = nil
	case models.GoalCancelled:
		if g.Status != models.GoalActive {
			return nil, fmt.Errorf("only active goals can be cancelled: %w", models.ErrInvalidState)
		}
	case models.GoalCompleted:
		if g.Status != models.GoalActive {
			return nil, fmt.Errorf("only active goals can be completed: %w", models.ErrInvalidState)
		}
		if g.CompletedAt == nil {
			g.CompletedAt = &now
		}
	default:
		return nil, fmt.Errorf("unknown goal status %q: %w", newStatus, models.ErrInvalidArgument)
	}

	g.Status = newStatus
	g.UpdatedAt = now

	_, err = db.Exec(`
		UPDATE goals SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?
	`, g.Status, g.CompletedAt, g.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal status: %w", err)
	}
	return g, nil
}

// GetGoalProgress loads a goal with its derived progress, completion
// estimate and deadline status.
func GetGoalProgress(db *sql.DB, userID, id string, now time.Time) (*GoalProgress, error) {
	g, err := GetGoal(db, userID, id)
	if err != nil {
		return nil, err
	}
	return &GoalProgress{
		Goal:     *g,
		Progress: finance.CalculateProgress(g.CurrentAmount, g.TargetAmount),
		Estimate: finance.EstimateCompletion(g.CurrentAmount, g.TargetAmount, g.MonthlyContribution, g.Deadline, now),
		Deadline: finance.DaysRemaining(g.Deadline, now),
	}, nil
}
