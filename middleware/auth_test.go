// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/riskcheck/auth"
)

const testSecret = "test-jwt-secret"

func TestRequireAuth(t *testing.T) {
	valid, err := auth.SignToken("user-42", "u@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	foreign, _ := auth.SignToken("user-42", "u@example.com", "other-secret", time.Hour)

	testCases := []struct {
		name           string
		header         string
		expectedStatus int
		expectedUser   string
	}{
		{"valid bearer", "Bearer " + valid, http.StatusOK, "user-42"},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "user-42"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, ""},
		{"no token", "Bearer", http.StatusUnauthorized, ""},
		{"foreign secret", "Bearer " + foreign, http.StatusUnauthorized, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser string
			handler := RequireAuth(testSecret, func(w http.ResponseWriter, r *http.Request) {
				gotUser = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/api/questionnaire/me/metrics", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, w.Code)
			}
			if gotUser != tc.expectedUser {
				t.Errorf("Expected user %q, got %q", tc.expectedUser, gotUser)
			}
		})
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if id := UserIDFromContext(req.Context()); id != "" {
		t.Errorf("expected empty user ID, got %q", id)
	}
}
