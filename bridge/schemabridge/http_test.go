package schemabridge_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrazmi/stockdata/bridge/schemabridge"
	"github.com/jrazmi/stockdata/bridge/scaffolding/bridgetest"
	"github.com/jrazmi/stockdata/infrastructure/datastores"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb"
	"github.com/jrazmi/stockdata/sdk/logger"
)

func TestSchemaRoutes(t *testing.T) {
	db, err := sqlitedb.Open(sqlitedb.MemoryPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ds := datastores.NewSQLite(db, "memory")
	t.Cleanup(func() { _ = ds.Close() })

	h, group := bridgetest.NewHandler()
	schemabridge.AddHttpRoutes(group, schemabridge.Config{Log: logger.NewDiscard(), Source: ds})

	rec := bridgetest.Do(t, h, http.MethodGet, "/schema/verify", nil)
	bridgetest.ExpectStatus(t, rec, http.StatusOK)
	if v := bridgetest.Decode[bridgetest.Record[schemabridge.Verification]](t, rec).Record; v.OK || len(v.Violations) == 0 {
		t.Fatalf("empty database verified: %+v", v)
	}

	if err := ds.Migrate(context.Background(), logger.NewDiscard().Logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	rec = bridgetest.Do(t, h, http.MethodGet, "/schema/migrations", nil)
	bridgetest.ExpectStatus(t, rec, http.StatusOK)
	page := bridgetest.Decode[bridgetest.Page[schemabridge.Migration]](t, rec)
	if len(page.Records) != 3 || page.Records[0].Version != "001_stocks.sql" {
		t.Fatalf("migrations = %+v", page.Records)
	}

	rec = bridgetest.Do(t, h, http.MethodGet, "/schema/verify", nil)
	bridgetest.ExpectStatus(t, rec, http.StatusOK)
	if v := bridgetest.Decode[bridgetest.Record[schemabridge.Verification]](t, rec).Record; !v.OK || v.Source != "sqlite" {
		t.Fatalf("verification = %+v", v)
	}
}
