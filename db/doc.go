// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections and schema creation.

# Connections

Open picks the driver for the configured database type and verifies the
connection:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are postgres (lib/pq), mysql (go-sql-driver/mysql) and
sqlite (modernc.org/sqlite). SQLite connections are limited to one open
connection with foreign keys enabled.

Queries are always written with '?' placeholders. DB and Tx rebind them
for the active Dialect, so PostgreSQL sees $1, $2, ...

# Transactions

	err := conn.Transaction(ctx, func(tx *db.Tx) error {
		id, err := tx.InsertID(ctx, "INSERT INTO questionnaire (user_id) VALUES (?)", userID)
		...
	})

The transaction is rolled back if fn returns an error or panics.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - app_user: Registered users and their password hashes
  - questionnaire: One submission, owned by a user
  - answer: One item value within a questionnaire

# Relationships

	app_user 1──* questionnaire
	questionnaire 1──* answer

All foreign keys use ON DELETE CASCADE.
*/
package db
