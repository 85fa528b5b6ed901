package services

import (
	"errors"
	"testing"
	"time"

	"grana/models"
	"grana/reports"
)

func TestMonthlyReportFromStorage(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)
	salary := defaultCategoryID(t, db, "Salary")
	groceries := defaultCategoryID(t, db, "Groceries")

	addIncome(t, db, u.ID, salary, 5000, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC))
	addExpense(t, db, u.ID, groceries, 800, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	// neighboring months must not leak in
	addExpense(t, db, u.ID, groceries, 999, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC))
	addExpense(t, db, u.ID, groceries, 999, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))

	report, err := MonthlyReport(db, u.ID, 2025, 3)
	if err != nil {
		t.Fatalf("MonthlyReport failed: %v", err)
	}
	if report.Type != models.ReportMonthly {
		t.Errorf("expected monthly report type, got %s", report.Type)
	}

	data, ok := report.Data.(reports.MonthlyData)
	if !ok {
		t.Fatalf("unexpected data payload %T", report.Data)
	}
	if data.Income.Total != 5000 {
		t.Errorf("expected income 5000, got %f", data.Income.Total)
	}
	if data.Expense.Total != 800 {
		t.Errorf("expected expenses 800, got %f", data.Expense.Total)
	}
	if data.Balance != 4200 {
		t.Errorf("expected balance 4200, got %f", data.Balance)
	}
}

func TestMonthlyReportRejectsBadMonth(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)

	if _, err := MonthlyReport(db, u.ID, 2025, 0); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for month 0, got %v", err)
	}
	if _, err := MonthlyReport(db, u.ID, 2025, 13); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for month 13, got %v", err)
	}
}

func TestReportsIsolatedPerUser(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db)
	bob := newTestUser(t, db)
	groceries := defaultCategoryID(t, db, "Groceries")

	addExpense(t, db, alice.ID, groceries, 100, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))

	report, err := MonthlyReport(db, bob.ID, 2025, 3)
	if err != nil {
		t.Fatalf("MonthlyReport failed: %v", err)
	}
	data := report.Data.(reports.MonthlyData)
	if data.Expense.Total != 0 {
		t.Errorf("expected bob to see no spend, got %f", data.Expense.Total)
	}
}

func TestComparativeReportWindows(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)
	salary := defaultCategoryID(t, db, "Salary")

	addIncome(t, db, u.ID, salary, 1000, time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC))
	addIncome(t, db, u.ID, salary, 1200, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

	report, err := ComparativeReport(db, u.ID, 2025, 2, 2025, 3)
	if err != nil {
		t.Fatalf("ComparativeReport failed: %v", err)
	}
	data, ok := report.Data.(reports.ComparativeData)
	if !ok {
		t.Fatalf("unexpected data payload %T", report.Data)
	}
	if data.Prior.Income != 1000 {
		t.Errorf("expected prior income 1000, got %f", data.Prior.Income)
	}
	if data.Current.Income != 1200 {
		t.Errorf("expected current income 1200, got %f", data.Current.Income)
	}
	if data.Variation.IncomeVariation != 20 {
		t.Errorf("expected 20%% income variation, got %f", data.Variation.IncomeVariation)
	}
}

func TestEvolutionReportWindowValidation(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)

	if _, err := EvolutionReport(db, u.ID, 1, time.Now().UTC()); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for 1-month window, got %v", err)
	}
	if _, err := EvolutionReport(db, u.ID, 61, time.Now().UTC()); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for 61-month window, got %v", err)
	}
}
