// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect abstracts the SQL differences between supported engines.
type Dialect interface {
	// Name is the database/sql driver name.
	Name() string

	// Placeholder returns the bind parameter for the given 1-based index.
	Placeholder(index int) string

	// ReturningClause returns the clause appended to INSERT statements to
	// read back the generated key, or "" when LastInsertId is used instead.
	ReturningClause(pk string) string

	// Schema returns the DDL statements, executed in order.
	Schema() []string
}

var (
	Postgres Dialect = postgresDialect{}
	MySQL    Dialect = mysqlDialect{}
	SQLite   Dialect = sqliteDialect{}
)

// DialectFor maps a configured database type to its Dialect.
func DialectFor(databaseType string) (Dialect, error) {
	switch databaseType {
	case "postgres":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite":
		return SQLite, nil
	}
	return nil, fmt.Errorf("unsupported database type %q", databaseType)
}

// Rebind rewrites '?' placeholders into the dialect's form.
func Rebind(d Dialect, query string) string {
	if d.Placeholder(1) == "?" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteString(d.Placeholder(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

type postgresDialect struct{}

func (postgresDialect) Name() string                     { return "postgres" }
func (postgresDialect) Placeholder(index int) string     { return "$" + strconv.Itoa(index) }
func (postgresDialect) ReturningClause(pk string) string { return " RETURNING " + pk }
func (postgresDialect) Schema() []string                 { return postgresSchema }

type mysqlDialect struct{}

func (mysqlDialect) Name() string                    { return "mysql" }
func (mysqlDialect) Placeholder(_ int) string        { return "?" }
func (mysqlDialect) ReturningClause(_ string) string { return "" }
func (mysqlDialect) Schema() []string                { return mysqlSchema }

type sqliteDialect struct{}

func (sqliteDialect) Name() string                    { return "sqlite" }
func (sqliteDialect) Placeholder(_ int) string        { return "?" }
func (sqliteDialect) ReturningClause(_ string) string { return "" }
func (sqliteDialect) Schema() []string                { return sqliteSchema }
