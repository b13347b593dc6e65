package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"splitledger/internal/auth"
)

func TestRequireAuth(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)

	var gotEmail string
	handler := RequireAuth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail = GetEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token passes and exposes the email", func(t *testing.T) {
		token, err := manager.Generate("alice@x.com")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/user/expenses", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if gotEmail != "alice@x.com" {
			t.Errorf("GetEmail = %q, want alice@x.com", gotEmail)
		}
	})

	rejected := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic YWxpY2U6cHc="},
		{"malformed token", "Bearer not.a.token"},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/user/expenses", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}
