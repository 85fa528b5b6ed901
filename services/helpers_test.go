package services

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"grana/database"
	"grana/migrations"
	"grana/models"
)

var testUserSeq int

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// every pooled connection would otherwise get its own empty in-memory db
	db.SetMaxOpenConns(1)
	if err := migrations.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()
	testUserSeq++
	u, err := RegisterUser(db, fmt.Sprintf("testuser%d", testUserSeq), "Test User", "password123")
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	return u
}

func defaultCategoryID(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	var id int
	err := db.QueryRow("SELECT id FROM categories WHERE name = ? AND is_default = 1", name).Scan(&id)
	if err != nil {
		t.Fatalf("failed to look up default category %s: %v", name, err)
	}
	return id
}

func addExpense(t *testing.T, db *sql.DB, userID string, categoryID int, amount float64, date time.Time) *models.Transaction {
	t.Helper()
	tx := &models.Transaction{
		CategoryID:  categoryID,
		Type:        models.TypeExpense,
		Amount:      amount,
		Description: "test expense",
		Date:        date,
	}
	if err := CreateTransaction(db, userID, tx); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}
	return tx
}

func addIncome(t *testing.T, db *sql.DB, userID string, categoryID int, amount float64, date time.Time) *models.Transaction {
	t.Helper()
	tx := &models.Transaction{
		CategoryID:  categoryID,
		Type:        models.TypeIncome,
		Amount:      amount,
		Description: "test income",
		Date:        date,
	}
	if err := CreateTransaction(db, userID, tx); err != nil {
		t.Fatalf("failed to create income: %v", err)
	}
	return tx
}
