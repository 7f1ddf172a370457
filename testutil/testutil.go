// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/riskcheck/auth"
	"github.com/danielhkuo/riskcheck/cliparse"
	"github.com/danielhkuo/riskcheck/db"
	"github.com/danielhkuo/riskcheck/models"
)

// TestDBURL is an in-memory SQLite database, private to each connection pool
const TestDBURL = "file::memory:"

// TestPassword is the password of every user created by CreateTestUser
const TestPassword = "password123"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *db.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: cliparse.DatabaseSQLite,
		JWTSecret:    "test-jwt-secret",
		TokenTTL:     time.Hour,
	}
}

// CreateTestUser inserts a user with TestPassword and returns its ID
func CreateTestUser(t *testing.T, conn *db.DB, email string) string {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	userID := auth.NewUserID()
	_, err = conn.ExecContext(context.Background(), `
		INSERT INTO app_user (id, email, password_hash)
		VALUES (?, ?, ?)
	`, userID, email, hash)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// AuthHeader returns an Authorization header carrying a token for userID
func AuthHeader(t *testing.T, cfg cliparse.Config, userID string) map[string]string {
	t.Helper()

	token, err := auth.SignToken(userID, userID+"@example.com", cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// RiskAnswers returns a full questionnaire with the given number of risk answers
func RiskAnswers(ones int) []models.AnswerRequest {
	answers := make([]models.AnswerRequest, models.QuestionnaireLength)
	for i := 0; i < ones && i < len(answers); i++ {
		answers[i].Value = models.RiskAnswerValue
	}
	return answers
}

// CreateTestQuestionnaire stores a questionnaire with the given answer values
func CreateTestQuestionnaire(t *testing.T, conn *db.DB, userID string, answers []models.AnswerRequest) int64 {
	t.Helper()

	ctx := context.Background()
	var id int64
	err := conn.Transaction(ctx, func(tx *db.Tx) error {
		var err error
		id, err = tx.InsertID(ctx, "INSERT INTO questionnaire (user_id) VALUES (?)", userID)
		if err != nil {
			return err
		}
		for _, a := range answers {
			_, err := tx.ExecContext(ctx, "INSERT INTO answer (value, questionnaire_id) VALUES (?, ?)", a.Value, id)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to create test questionnaire: %v", err)
	}

	return id
}

// CountRows returns the number of rows matching a query of the form SELECT COUNT(*) ...
func CountRows(t *testing.T, conn *db.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := conn.QueryRowContext(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
