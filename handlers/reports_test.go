package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"grana/models"
	"grana/services"
)

func TestMonthlyReportEndpoint(t *testing.T) {
	h, u := setupTestHandler(t)
	groceries := expenseCategoryID(t, h.DB)

	tx := &models.Transaction{CategoryID: groceries, Type: models.TypeExpense, Amount: 200}
	if err := services.CreateTransaction(h.DB, u.ID, tx); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	now := tx.Date
	req := httptest.NewRequest("GET",
		"/api/reports/monthly?year="+now.Format("2006")+"&month="+now.Format("1"), nil)
	req = setupTestAuth(req, u.ID)

	w := httptest.NewRecorder()
	h.MonthlyReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var report models.Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if report.Type != models.ReportMonthly {
		t.Errorf("expected monthly report type, got %s", report.Type)
	}
	if report.Summary == "" {
		t.Error("expected a human-readable summary")
	}
}

func TestMonthlyReportBadParams(t *testing.T) {
	h, u := setupTestHandler(t)

	req := setupTestAuth(httptest.NewRequest("GET", "/api/reports/monthly?year=2025&month=13", nil), u.ID)
	w := httptest.NewRecorder()
	h.MonthlyReport(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for month 13, got %d", w.Code)
	}

	req = setupTestAuth(httptest.NewRequest("GET", "/api/reports/monthly?year=2025", nil), u.ID)
	w = httptest.NewRecorder()
	h.MonthlyReport(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing month, got %d", w.Code)
	}
}

func TestTopReportEndpoint(t *testing.T) {
	h, u := setupTestHandler(t)
	groceries := expenseCategoryID(t, h.DB)

	tx := &models.Transaction{CategoryID: groceries, Type: models.TypeExpense, Amount: 75}
	if err := services.CreateTransaction(h.DB, u.ID, tx); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	from := tx.Date.AddDate(0, 0, -1).Format("2006-01-02")
	to := tx.Date.AddDate(0, 0, 1).Format("2006-01-02")
	req := setupTestAuth(httptest.NewRequest("GET", "/api/reports/top?from="+from+"&to="+to+"&limit=5", nil), u.ID)

	w := httptest.NewRecorder()
	h.TopReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var report models.Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if report.Type != models.ReportTop {
		t.Errorf("expected top report type, got %s", report.Type)
	}
}
