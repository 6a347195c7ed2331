// Package schema contains embedded migration files.
package schema

import "embed"

// PostgresFS contains the SQL migration files for PostgreSQL.
//
//go:embed pgmigrations/*.sql
var PostgresFS embed.FS

// PostgresDir is the directory inside PostgresFS holding the migrations.
const PostgresDir = "pgmigrations"

// SQLiteFS contains the SQL migration files for SQLite.
//
//go:embed sqlitemigrations/*.sql
var SQLiteFS embed.FS

// SQLiteDir is the directory inside SQLiteFS holding the migrations.
const SQLiteDir = "sqlitemigrations"
