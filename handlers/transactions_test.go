package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"grana/models"

	"github.com/gorilla/mux"
)

func TestCreateAndGetTransaction(t *testing.T) {
	h, u := setupTestHandler(t)
	groceries := expenseCategoryID(t, h.DB)

	reqBody := models.Transaction{
		CategoryID:  groceries,
		Type:        models.TypeExpense,
		Amount:      125.90,
		Description: "weekly shop",
		Date:        time.Now().UTC().AddDate(0, 0, -1),
	}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/transactions", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req = setupTestAuth(req, u.ID)

	w := httptest.NewRecorder()
	h.CreateTransaction(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var created models.Transaction
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("expected server-assigned id")
	}
	if created.Amount != 125.90 {
		t.Errorf("expected amount 125.90, got %f", created.Amount)
	}

	// fetch it back through the handler
	getReq := httptest.NewRequest("GET", "/api/transactions/"+created.ID, nil)
	getReq = setupTestAuth(getReq, u.ID)
	getReq = mux.SetURLVars(getReq, map[string]string{"id": created.ID})

	getW := httptest.NewRecorder()
	h.GetTransaction(getW, getReq)

	if getW.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", getW.Code)
	}
	var fetched models.TransactionWithCategory
	if err := json.NewDecoder(getW.Body).Decode(&fetched); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if fetched.CategoryName != "Groceries" {
		t.Errorf("expected joined category name, got %q", fetched.CategoryName)
	}
}

func TestCreateTransactionValidationError(t *testing.T) {
	h, u := setupTestHandler(t)
	groceries := expenseCategoryID(t, h.DB)

	reqBody := models.Transaction{CategoryID: groceries, Type: models.TypeExpense, Amount: -5}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/transactions", bytes.NewBuffer(jsonBody))
	req = setupTestAuth(req, u.ID)

	w := httptest.NewRecorder()
	h.CreateTransaction(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for negative amount, got %d", w.Code)
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	h, u := setupTestHandler(t)

	req := httptest.NewRequest("GET", "/api/transactions/missing", nil)
	req = setupTestAuth(req, u.ID)
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})

	w := httptest.NewRecorder()
	h.GetTransaction(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestListTransactionsFilterByType(t *testing.T) {
	h, u := setupTestHandler(t)
	groceries := expenseCategoryID(t, h.DB)
	salary := incomeCategoryID(t, h.DB)

	for _, tx := range []models.Transaction{
		{CategoryID: groceries, Type: models.TypeExpense, Amount: 50},
		{CategoryID: salary, Type: models.TypeIncome, Amount: 3000},
	} {
		jsonBody, _ := json.Marshal(tx)
		req := setupTestAuth(httptest.NewRequest("POST", "/api/transactions", bytes.NewBuffer(jsonBody)), u.ID)
		w := httptest.NewRecorder()
		h.CreateTransaction(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("setup transaction failed: %s", w.Body.String())
		}
	}

	req := httptest.NewRequest("GET", "/api/transactions?type=expense", nil)
	req = setupTestAuth(req, u.ID)
	w := httptest.NewRecorder()
	h.ListTransactions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var list []models.TransactionWithCategory
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(list))
	}
	if list[0].Type != models.TypeExpense {
		t.Errorf("expected expense, got %s", list[0].Type)
	}
}

func TestDeleteTransactionOfOtherUserForbidden(t *testing.T) {
	h, owner := setupTestHandler(t)
	groceries := expenseCategoryID(t, h.DB)

	tx := models.Transaction{CategoryID: groceries, Type: models.TypeExpense, Amount: 10}
	jsonBody, _ := json.Marshal(tx)
	req := setupTestAuth(httptest.NewRequest("POST", "/api/transactions", bytes.NewBuffer(jsonBody)), owner.ID)
	w := httptest.NewRecorder()
	h.CreateTransaction(w, req)
	var created models.Transaction
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	delReq := httptest.NewRequest("DELETE", "/api/transactions/"+created.ID, nil)
	delReq = setupTestAuth(delReq, "some-other-user")
	delReq = mux.SetURLVars(delReq, map[string]string{"id": created.ID})

	delW := httptest.NewRecorder()
	h.DeleteTransaction(delW, delReq)

	if delW.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", delW.Code)
	}
}
