package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"grana/database"
	"grana/middleware"
	"grana/migrations"
	"grana/models"
	"grana/services"
)

// setupTestHandler opens an in-memory database, runs the migrations and
// returns a handler plus a registered user.
func setupTestHandler(t *testing.T) (*Handler, *models.User) {
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

	u, err := services.RegisterUser(db, "handlertest", "Handler Test", "password123")
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	return New(db), u
}

// setupTestAuth adds authentication context to the request, bypassing the
// token middleware.
func setupTestAuth(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func expenseCategoryID(t *testing.T, db *sql.DB) int {
	t.Helper()
	var id int
	if err := db.QueryRow("SELECT id FROM categories WHERE name = 'Groceries' AND is_default = 1").Scan(&id); err != nil {
		t.Fatalf("failed to look up expense category: %v", err)
	}
	return id
}

func incomeCategoryID(t *testing.T, db *sql.DB) int {
	t.Helper()
	var id int
	if err := db.QueryRow("SELECT id FROM categories WHERE name = 'Salary' AND is_default = 1").Scan(&id); err != nil {
		t.Fatalf("failed to look up income category: %v", err)
	}
	return id
}
