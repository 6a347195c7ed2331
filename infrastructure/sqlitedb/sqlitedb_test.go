package sqlitedb_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb"
	"github.com/jrazmi/stockdata/sdk/logger"
)

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlitedb.Open(sqlitedb.MemoryPath)
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return db
}

func TestMigrateEmbedded(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	log := logger.NewDiscard().Logger

	if err := sqlitedb.Migrate(ctx, db, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := sqlitedb.Migrate(ctx, db, log); err != nil {
		t.Fatalf("re-running migrations should be a no-op: %v", err)
	}

	applied, err := sqlitedb.AppliedMigrations(ctx, db)
	if err != nil {
		t.Fatalf("applied: %v", err)
	}
	if len(applied) != 3 {
		t.Fatalf("got %d applied migrations, want 3", len(applied))
	}

	for _, table := range []string{"stocks_stock", "analysis_clusteringcriterion", "analysis_clusteringresult", "financials_financialstatement"} {
		var name string
		err := db.GetContext(ctx, &name, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrateFS(t *testing.T) {
	ctx := context.Background()
	log := logger.NewDiscard().Logger

	t.Run("failed migration is not recorded", func(t *testing.T) {
		db := openDB(t)
		bad := fstest.MapFS{
			"m/001_bad.sql": {Data: []byte("CREAT TABLE things(id INTEGER);")},
		}
		if err := sqlitedb.MigrateFS(ctx, db, log, bad, "m"); err == nil {
			t.Fatal("expected bad migration to fail")
		}

		var n int
		if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM schema_migrations"); err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 0 {
			t.Fatalf("failed migration recorded %d rows", n)
		}
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		db := openDB(t)
		first := fstest.MapFS{
			"m/001_things.sql": {Data: []byte("CREATE TABLE things(id INTEGER PRIMARY KEY);")},
		}
		if err := sqlitedb.MigrateFS(ctx, db, log, first, "m"); err != nil {
			t.Fatalf("first run: %v", err)
		}

		edited := fstest.MapFS{
			"m/001_things.sql": {Data: []byte("CREATE TABLE things(id INTEGER PRIMARY KEY, name TEXT);")},
		}
		err := sqlitedb.MigrateFS(ctx, db, log, edited, "m")
		if !errors.Is(err, sqlitedb.ErrChecksumMismatch) {
			t.Fatalf("got %v, want ErrChecksumMismatch", err)
		}
	})

	t.Run("lexical order", func(t *testing.T) {
		db := openDB(t)
		files := fstest.MapFS{
			"m/002_child.sql":  {Data: []byte("CREATE TABLE child(id INTEGER PRIMARY KEY, parent_id INTEGER REFERENCES parent(id));")},
			"m/001_parent.sql": {Data: []byte("CREATE TABLE parent(id INTEGER PRIMARY KEY);")},
			"m/readme.txt":     {Data: []byte("ignored")},
		}
		if err := sqlitedb.MigrateFS(ctx, db, log, files, "m"); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		applied, err := sqlitedb.AppliedMigrations(ctx, db)
		if err != nil {
			t.Fatalf("applied: %v", err)
		}
		if len(applied) != 2 || applied[0].Version != "001_parent.sql" {
			t.Fatalf("unexpected applied migrations %+v", applied)
		}
	})
}

func TestHandleSQLiteError(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	schema := `
		CREATE TABLE parent(id INTEGER PRIMARY KEY, code TEXT NOT NULL UNIQUE);
		CREATE TABLE child(id INTEGER PRIMARY KEY, parent_id INTEGER NOT NULL REFERENCES parent(id) ON DELETE CASCADE);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO parent(id, code) VALUES (1, 'A')"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err := db.ExecContext(ctx, "INSERT INTO parent(id, code) VALUES (2, 'A')")
	if got := sqlitedb.HandleSQLiteError(err); !errors.Is(got, sqlitedb.ErrDBDuplicatedEntry) {
		t.Errorf("unique violation mapped to %v", got)
	}

	_, err = db.ExecContext(ctx, "INSERT INTO child(id, parent_id) VALUES (1, 99)")
	if got := sqlitedb.HandleSQLiteError(err); !errors.Is(got, sqlitedb.ErrDBForeignKey) {
		t.Errorf("foreign key violation mapped to %v", got)
	}

	var code string
	err = db.GetContext(ctx, &code, "SELECT code FROM parent WHERE id = 42")
	if got := sqlitedb.HandleSQLiteError(err); !errors.Is(got, sqlitedb.ErrDBNotFound) {
		t.Errorf("missing row mapped to %v", got)
	}

	if sqlitedb.HandleSQLiteError(nil) != nil {
		t.Error("nil must stay nil")
	}
}

func TestQueryHelpers(t *testing.T) {
	var w sqlitedb.Where
	w.Add("stock_id = :stock_id")
	data := map[string]any{"stock_id": int64(1)}
	year, id := int64(2022), int64(5)

	if err := sqlitedb.ApplyCursorPagination(&w, data, "year", "id", &year, &id, sqlitedb.DESC); err != nil {
		t.Fatalf("cursor: %v", err)
	}

	var buf bytes.Buffer
	buf.WriteString("SELECT * FROM financials_financialstatement")
	w.AppendTo(&buf)
	if err := sqlitedb.AddOrderByClause(&buf, "year", "id", sqlitedb.DESC); err != nil {
		t.Fatalf("order: %v", err)
	}
	sqlitedb.AddLimitClause(10, data, &buf)

	want := `SELECT * FROM financials_financialstatement WHERE stock_id = :stock_id AND ("year", "id") < (:cursor_order_value, :cursor_pk) ORDER BY "year" DESC, "id" DESC LIMIT :limit`
	if got := buf.String(); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}

	if _, err := sqlitedb.QuoteIdentifier("year) OR (1=1"); err == nil {
		t.Error("expected invalid identifier error")
	}
	if got, _ := sqlitedb.QuoteIdentifier("s.stock_code"); got != `"s"."stock_code"` {
		t.Errorf("qualified identifier quoted as %s", got)
	}
}
