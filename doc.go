// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the riskcheck API server.

riskcheck collects a fixed 20-item yes/no questionnaire from authenticated
users, stores every submission and reports personal and global risk
statistics. A questionnaire's risk score is its number of "1" answers; scores
of 7 or more count as at risk.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:riskcheck.db JWT_SECRET=dev go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -jwt-secret dev

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string
  - JWT_SECRET (--jwt-secret): Secret for signing access tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres, mysql or sqlite (default: sqlite)
  - TOKEN_TTL (--token-ttl): Access token lifetime (default: 24h)

Values may also come from a .env file.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, questionnaires, answers, metrics)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer auth, JSON and validation helpers
  - models: Request/response types
  - auth: Password hashing and access tokens
  - db: Connections, dialects and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
