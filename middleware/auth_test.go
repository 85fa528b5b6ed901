package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"grana/security"
)

func TestExtractToken(t *testing.T) {
	testCases := []struct {
		name     string
		header   string
		expected string
	}{
		{
			name:     "Valid bearer token",
			header:   "Bearer abc123",
			expected: "abc123",
		},
		{
			name:     "Missing Bearer prefix",
			header:   "abc123",
			expected: "",
		},
		{
			name:     "Empty header",
			header:   "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := extractToken(tc.header)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q for header %q", tc.expected, result, tc.header)
			}
		})
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached without a token")
	}))

	req := httptest.NewRequest("GET", "/api/transactions", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached with a bad token")
	}))

	req := httptest.NewRequest("GET", "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestAuthMiddlewarePassesValidToken(t *testing.T) {
	token, err := security.IssueToken("user-42", "maria")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	var gotUserID string
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserIDFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if gotUserID != "user-42" {
		t.Errorf("Expected user-42 in context, got %q", gotUserID)
	}
}

func TestAuthMiddlewareAllowsPreflight(t *testing.T) {
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("OPTIONS", "/api/transactions", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected preflight to pass through, got %d", rr.Code)
	}
}
