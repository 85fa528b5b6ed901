package services

import (
	"errors"
	"testing"
	"time"

	"grana/models"
)

func TestCreateTransactionDateBoundary(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)
	groceries := defaultCategoryID(t, db, "Groceries")

	now := time.Now().UTC()

	// tomorrow is still accepted to tolerate timezone skew
	tx := &models.Transaction{
		CategoryID:  groceries,
		Type:        models.TypeExpense,
		Amount:      42,
		Description: "pre-dated groceries",
		Date:        now.AddDate(0, 0, 1),
	}
	if err := CreateTransaction(db, u.ID, tx); err != nil {
		t.Fatalf("expected transaction dated tomorrow to be accepted, got %v", err)
	}

	tx = &models.Transaction{
		CategoryID: groceries,
		Type:       models.TypeExpense,
		Amount:     42,
		Date:       now.AddDate(0, 0, 2),
	}
	err := CreateTransaction(db, u.ID, tx)
	if !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for date beyond tomorrow, got %v", err)
	}
}

func TestUpdateTransactionRejectsFutureDate(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)
	groceries := defaultCategoryID(t, db, "Groceries")

	now := time.Now().UTC()
	created := addExpense(t, db, u.ID, groceries, 42, now)

	err := UpdateTransaction(db, u.ID, created.ID, &models.Transaction{
		CategoryID: groceries,
		Type:       models.TypeExpense,
		Amount:     42,
		Date:       now.AddDate(0, 0, 3),
	})
	if !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for future-dated update, got %v", err)
	}

	got, err := GetTransaction(db, u.ID, created.ID)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if !got.Date.Equal(now) && got.Date.Format("2006-01-02") != now.Format("2006-01-02") {
		t.Errorf("expected original date to survive the rejected update, got %v", got.Date)
	}
}
