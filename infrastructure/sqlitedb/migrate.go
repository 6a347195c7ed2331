package sqlitedb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/stockdata/schema"
)

// ErrChecksumMismatch is returned when an applied migration file has changed.
var ErrChecksumMismatch = errors.New("migration checksum mismatch")

// AppliedMigration is one row of schema_migrations.
type AppliedMigration struct {
	Version   string    `db:"version" json:"version"`
	Checksum  string    `db:"checksum" json:"checksum"`
	AppliedAt time.Time `db:"applied_at" json:"applied_at"`
}

// Migrate runs all pending migrations from schema/sqlitemigrations/*.sql.
func Migrate(ctx context.Context, db *sqlx.DB, log *slog.Logger) error {
	return MigrateFS(ctx, db, log, schema.SQLiteFS, schema.SQLiteDir)
}

// MigrateFS runs the .sql files found in dir of fsys in lexical order, each
// in its own transaction, recording a sha256 checksum per file.
func MigrateFS(ctx context.Context, db *sqlx.DB, log *slog.Logger, fsys fs.FS, dir string) error {
	if log == nil {
		log = slog.Default()
	}

	const createTable = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			checksum VARCHAR(64) NOT NULL,
			applied_at TIMESTAMP NOT NULL
		)`
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	log.InfoContext(ctx, "running database migrations", "count", len(files))
	for _, file := range files {
		if err := applyMigration(ctx, db, log, fsys, path.Join(dir, file)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	log.InfoContext(ctx, "migrations complete")

	return nil
}

// AppliedMigrations lists the recorded migrations ordered by version.
func AppliedMigrations(ctx context.Context, db *sqlx.DB) ([]AppliedMigration, error) {
	var out []AppliedMigration
	err := db.SelectContext(ctx, &out, "SELECT version, checksum, applied_at FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, HandleSQLiteError(err)
	}
	return out, nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, log *slog.Logger, fsys fs.FS, filePath string) error {
	version := path.Base(filePath)

	content, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	checksum := fmt.Sprintf("%x", sha256.Sum256(content))

	var existing string
	err = db.GetContext(ctx, &existing, "SELECT checksum FROM schema_migrations WHERE version = ?", version)
	switch {
	case err == nil:
		if existing != checksum {
			return fmt.Errorf("%w: %s recorded %s, file has %s", ErrChecksumMismatch, version, existing, checksum)
		}
		log.DebugContext(ctx, "migration already applied", "version", version)
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("lookup migration: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, checksum, applied_at) VALUES (?, ?, ?)",
		version, checksum, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.InfoContext(ctx, "migration applied", "version", version, "checksum", checksum[:8])
	return nil
}
