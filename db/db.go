// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Querier is satisfied by both DB and Tx so helpers can run inside or
// outside a transaction.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	InsertID(ctx context.Context, query string, args ...any) (int64, error)
}

// DB wraps *sql.DB with a Dialect. Queries are written with '?' placeholders.
type DB struct {
	raw *sql.DB
	d   Dialect
}

// New wraps an open *sql.DB.
func New(raw *sql.DB, d Dialect) *DB {
	return &DB{raw: raw, d: d}
}

// Open connects to the database and verifies the connection.
func Open(databaseType, url string) (*DB, error) {
	d, err := DialectFor(databaseType)
	if err != nil {
		return nil, err
	}

	if d == MySQL {
		// UPDATE must report matched rows, not changed rows, for conflict detection
		mcfg, err := mysql.ParseDSN(url)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql DSN: %w", err)
		}
		mcfg.ClientFoundRows = true
		url = mcfg.FormatDSN()
	}

	if d == SQLite {
		url = sqliteDSN(url)
	}

	raw, err := sql.Open(d.Name(), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if d == SQLite {
		// SQLite allows a single writer
		raw.SetMaxOpenConns(1)
	}

	if err := raw.Ping(); err != nil {
		raw.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return New(raw, d), nil
}

// sqliteDSN turns on foreign keys for every connection the pool dials.
func sqliteDSN(url string) string {
	if strings.Contains(url, "foreign_keys") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)"
}

func (db *DB) Dialect() Dialect { return db.d }

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.raw.QueryContext(ctx, Rebind(db.d, query), args...)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.raw.QueryRowContext(ctx, Rebind(db.d, query), args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.raw.ExecContext(ctx, Rebind(db.d, query), args...)
}

// InsertID runs an INSERT and returns the generated "id" column.
func (db *DB) InsertID(ctx context.Context, query string, args ...any) (int64, error) {
	return insertID(ctx, db, db.d, query, args...)
}

// Transaction executes fn within a transaction.
// If fn returns nil the transaction is committed, otherwise it is rolled back.
func (db *DB) Transaction(ctx context.Context, fn func(tx *Tx) error) (err error) {
	raw, err := db.raw.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	tx := &Tx{raw: raw, d: db.d}

	defer func() {
		if p := recover(); p != nil {
			_ = raw.Rollback()
			panic(p)
		}
		if err != nil {
			_ = raw.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return raw.Commit()
}

func (db *DB) Ping() error  { return db.raw.Ping() }
func (db *DB) Close() error { return db.raw.Close() }

// Tx wraps *sql.Tx with a Dialect and satisfies Querier.
type Tx struct {
	raw *sql.Tx
	d   Dialect
}

func (tx *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return tx.raw.QueryContext(ctx, Rebind(tx.d, query), args...)
}

func (tx *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return tx.raw.QueryRowContext(ctx, Rebind(tx.d, query), args...)
}

func (tx *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return tx.raw.ExecContext(ctx, Rebind(tx.d, query), args...)
}

func (tx *Tx) InsertID(ctx context.Context, query string, args ...any) (int64, error) {
	return insertID(ctx, tx, tx.d, query, args...)
}

func insertID(ctx context.Context, q Querier, d Dialect, query string, args ...any) (int64, error) {
	if clause := d.ReturningClause("id"); clause != "" {
		var id int64
		if err := q.QueryRowContext(ctx, query+clause, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Exists reports whether a row matching the query exists.
func Exists(ctx context.Context, q Querier, query string, args ...any) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, query, args...).Scan(&n)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
