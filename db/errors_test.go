// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

func TestIsUniqueViolation_SQLite(t *testing.T) {
	conn := openMemory(t)
	defer conn.Close()
	ctx := context.Background()

	insert := "INSERT INTO app_user (id, email, password_hash) VALUES (?, ?, ?)"
	if _, err := conn.ExecContext(ctx, insert, "u1", "dup@example.com", "x"); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	_, err := conn.ExecContext(ctx, insert, "u2", "dup@example.com", "x")
	if err == nil {
		t.Fatal("expected duplicate email to fail")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("duplicate email not reported as unique violation: %v", err)
	}

	_, err = conn.ExecContext(ctx, "INSERT INTO questionnaire (user_id) VALUES (?)", "missing")
	if err == nil {
		t.Fatal("expected foreign key failure")
	}
	if IsUniqueViolation(err) {
		t.Errorf("foreign key failure reported as unique violation: %v", err)
	}
}

func TestIsUniqueViolation_Drivers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"postgres unique", &pq.Error{Code: "23505"}, true},
		{"postgres fk", &pq.Error{Code: "23503"}, false},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, true},
		{"mysql other", &mysql.MySQLError{Number: 1452}, false},
		{"wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"plain", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.expected {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.expected)
			}
		})
	}
}
