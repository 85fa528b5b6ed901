package migrations

import (
	"database/sql"
	"fmt"

	"grana/models"
)

// SeedDefaultCategories inserts the global system categories every user
// starts with. Default categories have no owner and are never editable.
func SeedDefaultCategories(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories WHERE is_default = 1").Scan(&count); err != nil {
		return fmt.Errorf("failed to check default categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		name   string
		txType string
		icon   string
		color  string
	}{
		{"Salary", models.TypeIncome, "money", "#2e7d32"},
		{"Freelance", models.TypeIncome, "briefcase", "#388e3c"},
		{"Investments", models.TypeIncome, "chart", "#1b5e20"},
		{"Other Income", models.TypeIncome, "plus", "#43a047"},
		{"Housing", models.TypeExpense, "home", "#c62828"},
		{"Groceries", models.TypeExpense, "cart", "#d84315"},
		{"Transport", models.TypeExpense, "car", "#ef6c00"},
		{"Health", models.TypeExpense, "heart", "#ad1457"},
		{"Leisure", models.TypeExpense, "smile", "#6a1b9a"},
		{"Education", models.TypeExpense, "book", "#283593"},
		{"Other Expenses", models.TypeExpense, "dots", "#455a64"},
	}

	for _, c := range defaults {
		_, err := db.Exec(`
			INSERT INTO categories (name, type, icon, color, is_default)
			VALUES (?, ?, ?, ?, 1)
		`, c.name, c.txType, c.icon, c.color)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.name, err)
		}
	}
	return nil
}
