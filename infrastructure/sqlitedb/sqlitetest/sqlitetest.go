// Package sqlitetest provides migrated in-memory databases for tests.
package sqlitetest

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb"
	"github.com/jrazmi/stockdata/sdk/logger"
)

// NewDatabase returns a private, fully migrated in-memory database that is
// closed when the test ends.
func NewDatabase(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlitedb.Open(sqlitedb.MemoryPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := sqlitedb.Migrate(context.Background(), db, logger.NewDiscard().Logger); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
