// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *DB) error {
	for _, stmt := range db.d.Schema() {
		if _, err := db.raw.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS app_user (
		id VARCHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS questionnaire (
		id SERIAL PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL REFERENCES app_user(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questionnaire_user_id ON questionnaire(user_id)`,
	`CREATE TABLE IF NOT EXISTS answer (
		id SERIAL PRIMARY KEY,
		value INTEGER NOT NULL DEFAULT 0,
		questionnaire_id INTEGER NOT NULL REFERENCES questionnaire(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_questionnaire_id ON answer(questionnaire_id)`,
}

// InnoDB indexes foreign key columns on its own.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS app_user (
		id VARCHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS questionnaire (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL,
		CONSTRAINT fk_questionnaire_user FOREIGN KEY (user_id) REFERENCES app_user(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS answer (
		id INT AUTO_INCREMENT PRIMARY KEY,
		value INT NOT NULL DEFAULT 0,
		questionnaire_id INT NOT NULL,
		CONSTRAINT fk_answer_questionnaire FOREIGN KEY (questionnaire_id) REFERENCES questionnaire(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS app_user (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS questionnaire (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questionnaire_user_id ON questionnaire(user_id)`,
	`CREATE TABLE IF NOT EXISTS answer (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		value INTEGER NOT NULL DEFAULT 0,
		questionnaire_id INTEGER NOT NULL REFERENCES questionnaire(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_questionnaire_id ON answer(questionnaire_id)`,
}
