package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowedOrigins := []string{
		"https://example.com",
		"http://localhost:5173",
	}

	testCases := []struct {
		name     string
		origin   string
		expected bool
	}{
		{
			name:     "Allowed origin",
			origin:   "https://example.com",
			expected: true,
		},
		{
			name:     "Disallowed origin",
			origin:   "https://evil.com",
			expected: false,
		},
		{
			name:     "Empty origin",
			origin:   "",
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := isAllowedOrigin(tc.origin, allowedOrigins)
			if result != tc.expected {
				t.Errorf("Expected %v, got %v for origin %s", tc.expected, result, tc.origin)
			}
		})
	}
}

func TestGetAllowedOriginsFromEnv(t *testing.T) {
	originalCors := os.Getenv("CORS_ALLOWED_ORIGINS")
	defer os.Setenv("CORS_ALLOWED_ORIGINS", originalCors)

	os.Setenv("CORS_ALLOWED_ORIGINS", "https://test1.com,https://test2.com")
	origins := getAllowedOrigins()
	if len(origins) != 2 {
		t.Fatalf("Expected 2 origins, got %d", len(origins))
	}
	if origins[0] != "https://test1.com" || origins[1] != "https://test2.com" {
		t.Errorf("Unexpected origins: %s", strings.Join(origins, ","))
	}
}

func TestEnableCORSPreflight(t *testing.T) {
	handler := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/api/transactions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200 for preflight, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("Expected origin echoed back, got %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
	if rr.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("Expected allowed methods header")
	}
}

func TestEnableCORSPassesThrough(t *testing.T) {
	called := false
	handler := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/transactions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !called {
		t.Error("Expected handler to be invoked")
	}
}
