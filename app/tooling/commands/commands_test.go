package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrazmi/stockdata/app/tooling/commands"
	"github.com/jrazmi/stockdata/infrastructure/datastores"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb"
	"github.com/jrazmi/stockdata/sdk/logger"
)

func newDatastore(t *testing.T) *datastores.Datastore {
	t.Helper()
	db, err := sqlitedb.Open(sqlitedb.MemoryPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ds := datastores.NewSQLite(db, "memory")
	t.Cleanup(func() { _ = ds.Close() })
	return ds
}

func TestMigrateStatusVerify(t *testing.T) {
	ctx := context.Background()
	ds := newDatastore(t)
	log := logger.NewDiscard().Logger

	var out bytes.Buffer
	err := commands.VerifySchema(ctx, &out, nil, ds)
	if !errors.Is(err, commands.ErrSchemaDrift) {
		t.Fatalf("verify before migrate: got %v, want ErrSchemaDrift", err)
	}
	if !strings.Contains(out.String(), "financials_financialstatement: table is missing") {
		t.Errorf("verify output = %q", out.String())
	}

	if err := commands.Migrate(ctx, log, ds); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	out.Reset()
	if err := commands.Status(ctx, &out, ds); err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, v := range []string{"001_stocks.sql", "002_analysis.sql", "003_financials.sql"} {
		if !strings.Contains(out.String(), v) {
			t.Errorf("status is missing %s:\n%s", v, out.String())
		}
	}

	out.Reset()
	if err := commands.VerifySchema(ctx, &out, nil, ds); err != nil {
		t.Fatalf("verify: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "ok") {
		t.Errorf("verify output = %q", out.String())
	}
}

func TestReflectSchemaWritesFiles(t *testing.T) {
	ctx := context.Background()
	ds := newDatastore(t)
	log := logger.NewDiscard().Logger
	if err := commands.Migrate(ctx, log, ds); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	dir := t.TempDir()
	if err := commands.ReflectSchema(ctx, log, []string{"-output", dir}, ds); err != nil {
		t.Fatalf("reflect: %v", err)
	}
	for _, name := range []string{"main.json", "main.sql"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
