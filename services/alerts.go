package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"grana/currency"
	"grana/finance"
	"grana/models"
)

// BudgetAlerts groups the user's currently active budgets by alert severity.
// Budgets under the caution threshold are left out.
func BudgetAlerts(db *sql.DB, userID string, now time.Time) (*models.BudgetAlerts, error) {
	usages, err := ListBudgetUsages(db, userID, now)
	if err != nil {
		return nil, err
	}
	alerts := finance.PartitionAlerts(usages)
	return &alerts, nil
}

// SweepAlerts writes a notification for every budget currently in warning or
// exceeded state that does not already have an unread notification at that
// level. Returns how many notifications were created.
func SweepAlerts(db *sql.DB, now time.Time) (int, error) {
	rows, err := db.Query("SELECT id FROM users")
	if err != nil {
		return 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	created := 0
	for _, userID := range userIDs {
		alerts, err := BudgetAlerts(db, userID, now)
		if err != nil {
			log.Printf("Alert sweep failed for user %s: %v", userID, err)
			continue
		}
		for _, u := range alerts.Exceeded {
			n, err := notifyBudget(db, userID, u, models.AlertExceeded)
			if err != nil {
				return created, err
			}
			created += n
		}
		for _, u := range alerts.Warning {
			n, err := notifyBudget(db, userID, u, models.AlertWarning)
			if err != nil {
				return created, err
			}
			created += n
		}
	}
	return created, nil
}

func notifyBudget(db *sql.DB, userID string, u models.BudgetUsage, level string) (int, error) {
	var existing int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM notifications
		WHERE user_id = ? AND budget_id = ? AND alert_level = ? AND read = 0
	`, userID, u.ID, level).Scan(&existing)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing notifications: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	var message string
	if level == models.AlertExceeded {
		message = fmt.Sprintf("Budget for %s exceeded: spent %s of %s",
			u.CategoryName, currency.FormatFloat(u.Spent), currency.FormatFloat(u.Amount))
	} else {
		message = fmt.Sprintf("Budget for %s at %.1f%%: spent %s of %s",
			u.CategoryName, u.Percentage, currency.FormatFloat(u.Spent), currency.FormatFloat(u.Amount))
	}

	_, err = db.Exec(`
		INSERT INTO notifications (user_id, budget_id, alert_level, message, read, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, userID, u.ID, level, message, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert notification: %w", err)
	}
	return 1, nil
}

// ListNotifications returns the user's notifications, newest first. When
// unreadOnly is set, read ones are filtered out.
func ListNotifications(db *sql.DB, userID string, unreadOnly bool) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, budget_id, alert_level, message, read, created_at
		FROM notifications
		WHERE user_id = ?
	`
	if unreadOnly {
		query += " AND read = 0"
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.BudgetID, &n.AlertLevel, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flags one of the user's notifications as read.
func MarkNotificationRead(db *sql.DB, userID string, id int) error {
	result, err := db.Exec(`
		UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("notification %d: %w", id, models.ErrNotFound)
	}
	return nil
}
