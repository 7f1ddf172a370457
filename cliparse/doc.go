// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: postgres, mysql or sqlite (default: sqlite)
  - JWTSecret: Secret for signing access tokens (required)
  - TokenTTL: Access token lifetime (default: 24h)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--jwt-secret  JWT signing secret
	--token-ttl   Token lifetime (Go duration)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	JWT_SECRET    → --jwt-secret
	TOKEN_TTL     → --token-ttl

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded first if present; it never overrides variables
already set in the process environment.
*/
package cliparse
