package migrations

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
)

// SeedDemoData seeds a demo user with a few months of activity for
// development environments. Never runs in production.
func SeedDemoData(db *sql.DB) error {
	if os.Getenv("APP_ENV") == "production" || os.Getenv("ENV") == "production" {
		return nil
	}
	if os.Getenv("SEED_DEMO") != "true" {
		log.Println("Skipping demo data seeding - set SEED_DEMO=true to enable")
		return nil
	}

	log.Println("Seeding demo data...")

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const demoUser = "demo-user"
	// bcrypt hash of "demo1234"
	_, err = tx.Exec(`
		INSERT OR IGNORE INTO users (id, username, name, password_hash)
		VALUES (?, 'demo', 'Demo User', '$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy')
	`, demoUser)
	if err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	var salaryID, groceriesID int
	if err := tx.QueryRow("SELECT id FROM categories WHERE name = 'Salary' AND is_default = 1").Scan(&salaryID); err != nil {
		return fmt.Errorf("failed to look up Salary category: %w", err)
	}
	if err := tx.QueryRow("SELECT id FROM categories WHERE name = 'Groceries' AND is_default = 1").Scan(&groceriesID); err != nil {
		return fmt.Errorf("failed to look up Groceries category: %w", err)
	}

	now := time.Now()
	for monthsAgo := 0; monthsAgo < 3; monthsAgo++ {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -monthsAgo, 0)

		_, err = tx.Exec(`
			INSERT INTO transactions (id, user_id, category_id, type, amount, description, date)
			VALUES (?, ?, ?, 'income', 4200, 'Monthly salary', ?)
		`, uuid.NewString(), demoUser, salaryID, monthStart.AddDate(0, 0, 4))
		if err != nil {
			return fmt.Errorf("failed to seed demo income: %w", err)
		}

		for _, day := range []int{2, 9, 16, 23} {
			_, err = tx.Exec(`
				INSERT INTO transactions (id, user_id, category_id, type, amount, description, date)
				VALUES (?, ?, ?, 'expense', 180.50, 'Weekly groceries', ?)
			`, uuid.NewString(), demoUser, groceriesID, monthStart.AddDate(0, 0, day))
			if err != nil {
				return fmt.Errorf("failed to seed demo expense: %w", err)
			}
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	_, err = tx.Exec(`
		INSERT INTO budgets (user_id, category_id, amount, period, start_date, end_date)
		VALUES (?, ?, 900, 'monthly', ?, ?)
	`, demoUser, groceriesID, monthStart, monthStart.AddDate(0, 1, -1))
	if err != nil {
		return fmt.Errorf("failed to seed demo budget: %w", err)
	}

	return tx.Commit()
}
