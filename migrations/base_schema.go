package migrations

import (
	"database/sql"
	"fmt"
)

// CreateBaseSchema creates all the base tables needed for the application.
func CreateBaseSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT REFERENCES users(id),
			parent_id INTEGER REFERENCES categories(id),
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			icon TEXT,
			color TEXT,
			is_default BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			category_id INTEGER NOT NULL REFERENCES categories(id),
			type TEXT NOT NULL,
			amount NUMERIC(15,2) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date DATETIME NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS budgets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL REFERENCES users(id),
			category_id INTEGER NOT NULL REFERENCES categories(id),
			amount NUMERIC(15,2) NOT NULL,
			period TEXT NOT NULL,
			start_date DATETIME NOT NULL,
			end_date DATETIME NOT NULL,
			rollover BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			target_amount NUMERIC(15,2) NOT NULL,
			current_amount NUMERIC(15,2) NOT NULL DEFAULT 0,
			monthly_contribution NUMERIC(15,2) NOT NULL DEFAULT 0,
			deadline DATETIME,
			status TEXT NOT NULL DEFAULT 'active',
			completed_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS goal_contributions (
			id TEXT PRIMARY KEY,
			goal_id TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
			amount NUMERIC(15,2) NOT NULL,
			description TEXT,
			date DATETIME NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL REFERENCES users(id),
			budget_id INTEGER NOT NULL REFERENCES budgets(id),
			alert_level TEXT NOT NULL,
			message TEXT NOT NULL,
			read BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
		CREATE INDEX IF NOT EXISTS idx_budgets_user ON budgets(user_id);
		CREATE INDEX IF NOT EXISTS idx_goal_contributions_goal ON goal_contributions(goal_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create base schema: %w", err)
	}
	return nil
}
