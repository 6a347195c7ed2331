package clusteringresultssqlitestore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo/stores/clusteringcriteriasqlitestore"
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo"
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo/stores/clusteringresultssqlitestore"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo/stores/stockssqlitestore"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb/sqlitetest"
	"github.com/jrazmi/stockdata/sdk/logger"
	"github.com/jrazmi/stockdata/sdk/validation"
)

type fixture struct {
	db       *sqlx.DB
	stocks   *stocksrepo.Repository
	criteria *clusteringcriteriarepo.Repository
	results  *clusteringresultsrepo.Repository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	log := logger.NewDiscard()
	db := sqlitetest.NewDatabase(t)
	return fixture{
		db:       db,
		stocks:   stocksrepo.NewRepository(log, stockssqlitestore.NewStore(log, db)),
		criteria: clusteringcriteriarepo.NewRepository(log, clusteringcriteriasqlitestore.NewStore(log, db)),
		results:  clusteringresultsrepo.NewRepository(log, clusteringresultssqlitestore.NewStore(log, db)),
	}
}

func (f fixture) stock(t *testing.T, code string) stocksrepo.Stock {
	t.Helper()
	s, err := f.stocks.Create(context.Background(), stocksrepo.CreateStock{StockCode: code, StockName: "Stock " + code, Market: "KOSPI"})
	if err != nil {
		t.Fatalf("create stock %s: %v", code, err)
	}
	return s
}

func (f fixture) criterion(t *testing.T, name string) clusteringcriteriarepo.ClusteringCriterion {
	t.Helper()
	c, err := f.criteria.Create(context.Background(), clusteringcriteriarepo.CreateClusteringCriterion{Name: name})
	if err != nil {
		t.Fatalf("create criterion %s: %v", name, err)
	}
	return c
}

func (f fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := f.db.Get(&n, `SELECT COUNT(*) FROM `+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestDuplicatePairRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.stock(t, "005930")
	c := f.criterion(t, "profitability")

	if _, err := f.results.Create(ctx, clusteringresultsrepo.CreateClusteringResult{StockID: s.ID, CriterionID: c.ID, ClusterID: 1}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := f.results.Create(ctx, clusteringresultsrepo.CreateClusteringResult{StockID: s.ID, CriterionID: c.ID, ClusterID: 2})
	if !errors.Is(err, clusteringresultsrepo.ErrClusteringExists) {
		t.Fatalf("second create: got %v, want ErrClusteringExists", err)
	}
	if !errors.Is(err, repositories.ErrDuplicate) {
		t.Errorf("error must wrap ErrDuplicate: %v", err)
	}

	other := f.criterion(t, "valuation")
	if _, err := f.results.Create(ctx, clusteringresultsrepo.CreateClusteringResult{StockID: s.ID, CriterionID: other.ID, ClusterID: 2}); err != nil {
		t.Errorf("same stock under another criterion: %v", err)
	}
}

func TestUnknownReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.criterion(t, "profitability")

	_, err := f.results.Create(ctx, clusteringresultsrepo.CreateClusteringResult{StockID: 999, CriterionID: c.ID, ClusterID: 0})
	if !errors.Is(err, repositories.ErrInvalidReference) {
		t.Fatalf("got %v, want ErrInvalidReference", err)
	}
}

func TestAssignReplacesCluster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.stock(t, "000660")
	c := f.criterion(t, "growth")

	first, err := f.results.Assign(ctx, s.ID, c.ID, 3)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	second, err := f.results.Assign(ctx, s.ID, c.ID, 5)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("reassign created row %d, want %d", second.ID, first.ID)
	}
	if second.ClusterID != 5 {
		t.Errorf("cluster_id = %d, want 5", second.ClusterID)
	}
	if n := f.count(t, "analysis_clusteringresult"); n != 1 {
		t.Errorf("%d rows, want 1", n)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.stock(t, "035420")
	c := f.criterion(t, "momentum")

	r, err := f.results.Create(ctx, clusteringresultsrepo.CreateClusteringResult{StockID: s.ID, CriterionID: c.ID, ClusterID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	moved, err := f.results.Update(ctx, r.ID, clusteringresultsrepo.UpdateClusteringResult{ClusterID: validation.IntPtr(4)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if moved.ClusterID != 4 {
		t.Errorf("cluster_id = %d, want 4", moved.ClusterID)
	}

	if err := f.results.Delete(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.results.Get(ctx, r.ID); !errors.Is(err, clusteringresultsrepo.ErrResultNotFound) {
		t.Errorf("get after delete: %v", err)
	}
	if _, err := f.results.Update(ctx, r.ID, clusteringresultsrepo.UpdateClusteringResult{ClusterID: validation.IntPtr(1)}); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("update after delete: %v", err)
	}
}

func TestDeleteStockCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep := f.stock(t, "005380")
	drop := f.stock(t, "051910")
	c := f.criterion(t, "valuation")

	for _, s := range []stocksrepo.Stock{keep, drop} {
		if _, err := f.results.Assign(ctx, s.ID, c.ID, 1); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}

	if err := f.stocks.Delete(ctx, drop.ID); err != nil {
		t.Fatalf("delete stock: %v", err)
	}

	left, _, err := f.results.ListByStock(ctx, drop.ID, fop.PageStringCursor{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("deleted stock still has %d clusterings", len(left))
	}
	if n := f.count(t, "analysis_clusteringresult"); n != 1 {
		t.Errorf("%d rows left, want 1", n)
	}
}

func TestDeleteCriterionCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.stock(t, "068270")
	c := f.criterion(t, "dividend")

	if _, err := f.results.Assign(ctx, s.ID, c.ID, 2); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := f.criteria.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete criterion: %v", err)
	}
	if n := f.count(t, "analysis_clusteringresult"); n != 0 {
		t.Errorf("%d rows left, want 0", n)
	}
}

func TestListByStockOrdersByCriterion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.stock(t, "207940")
	var criteria []clusteringcriteriarepo.ClusteringCriterion
	for _, name := range []string{"a", "b", "c"} {
		criteria = append(criteria, f.criterion(t, name))
	}

	for i := len(criteria) - 1; i >= 0; i-- {
		if _, err := f.results.Assign(ctx, s.ID, criteria[i].ID, i); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}

	page1, info, err := f.results.ListByStock(ctx, s.ID, fop.PageStringCursor{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page1) != 2 || page1[0].CriterionID != criteria[0].ID || page1[1].CriterionID != criteria[1].ID {
		t.Fatalf("first page %+v", page1)
	}

	page2, _, err := f.results.ListByStock(ctx, s.ID, fop.PageStringCursor{Limit: 2, Cursor: info.NextCursor})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(page2) != 1 || page2[0].CriterionID != criteria[2].ID {
		t.Fatalf("second page %+v", page2)
	}
}
