package clusteringcriteriarepobridge_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/jrazmi/stockdata/bridge/repositories/clusteringcriteriarepobridge"
	"github.com/jrazmi/stockdata/bridge/scaffolding/bridgetest"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo/stores/clusteringcriteriasqlitestore"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb/sqlitetest"
	"github.com/jrazmi/stockdata/sdk/logger"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	log := logger.NewDiscard()
	db := sqlitetest.NewDatabase(t)

	h, group := bridgetest.NewHandler()
	clusteringcriteriarepobridge.AddHttpRoutes(group, clusteringcriteriarepobridge.Config{
		Log:        log,
		Repository: clusteringcriteriarepo.NewRepository(log, clusteringcriteriasqlitestore.NewStore(log, db)),
	})
	return h
}

func TestCriterionLifecycle(t *testing.T) {
	h := newHandler(t)

	rec := bridgetest.Do(t, h, http.MethodPost, "/clustering-criteria", clusteringcriteriarepobridge.CreateClusteringCriterionInput{Name: "profitability"})
	bridgetest.ExpectStatus(t, rec, http.StatusCreated)
	created := bridgetest.Decode[bridgetest.Record[clusteringcriteriarepobridge.ClusteringCriterion]](t, rec).Record
	path := fmt.Sprintf("/clustering-criteria/%d", created.ID)

	name := "profitability (ROE)"
	rec = bridgetest.Do(t, h, http.MethodPut, path, clusteringcriteriarepobridge.UpdateClusteringCriterionInput{Name: &name})
	bridgetest.ExpectStatus(t, rec, http.StatusOK)
	if got := bridgetest.Decode[bridgetest.Record[clusteringcriteriarepobridge.ClusteringCriterion]](t, rec).Record; got.Name != name {
		t.Fatalf("name = %q, want %q", got.Name, name)
	}

	rec = bridgetest.Do(t, h, http.MethodGet, "/clustering-criteria?searchTerm=ROE", nil)
	bridgetest.ExpectStatus(t, rec, http.StatusOK)
	if page := bridgetest.Decode[bridgetest.Page[clusteringcriteriarepobridge.ClusteringCriterion]](t, rec); len(page.Records) != 1 {
		t.Fatalf("search records = %+v", page.Records)
	}

	bridgetest.ExpectStatus(t, bridgetest.Do(t, h, http.MethodDelete, path, nil), http.StatusNoContent)
	bridgetest.ExpectStatus(t, bridgetest.Do(t, h, http.MethodGet, path, nil), http.StatusNotFound)
}

func TestCriterionNameRules(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name   string
		input  string
		status int
	}{
		{"empty", "", http.StatusBadRequest},
		{"too long", strings.Repeat("x", 101), http.StatusBadRequest},
		{"at limit", strings.Repeat("x", 100), http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := bridgetest.Do(t, h, http.MethodPost, "/clustering-criteria", clusteringcriteriarepobridge.CreateClusteringCriterionInput{Name: tt.input})
			bridgetest.ExpectStatus(t, rec, tt.status)
		})
	}
}
