package clusteringresultspgxstore_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo/stores/clusteringcriteriapgxstore"
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo"
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo/stores/clusteringresultspgxstore"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo/stores/stockspgxstore"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/postgresdb/pgtest"
	"github.com/jrazmi/stockdata/sdk/logger"
)

// TestPostgresClusterings runs the clustering constraints against a real
// server.
func TestPostgresClusterings(t *testing.T) {
	pool := pgtest.NewDatabase(t)
	log := logger.NewDiscard()
	ctx := context.Background()

	stocks := stocksrepo.NewRepository(log, stockspgxstore.NewStore(log, pool))
	criteria := clusteringcriteriarepo.NewRepository(log, clusteringcriteriapgxstore.NewStore(log, pool))
	results := clusteringresultsrepo.NewRepository(log, clusteringresultspgxstore.NewStore(log, pool))

	samsung, err := stocks.Create(ctx, stocksrepo.CreateStock{StockCode: "005930", StockName: "Samsung Electronics"})
	if err != nil {
		t.Fatalf("create stock: %v", err)
	}
	hynix, err := stocks.Create(ctx, stocksrepo.CreateStock{StockCode: "000660", StockName: "SK hynix"})
	if err != nil {
		t.Fatalf("create stock: %v", err)
	}
	profitability, err := criteria.Create(ctx, clusteringcriteriarepo.CreateClusteringCriterion{Name: "profitability"})
	if err != nil {
		t.Fatalf("create criterion: %v", err)
	}
	valuation, err := criteria.Create(ctx, clusteringcriteriarepo.CreateClusteringCriterion{Name: "valuation"})
	if err != nil {
		t.Fatalf("create criterion: %v", err)
	}

	t.Run("duplicate clustering", func(t *testing.T) {
		if _, err := results.Create(ctx, clusteringresultsrepo.CreateClusteringResult{StockID: samsung.ID, CriterionID: profitability.ID, ClusterID: 1}); err != nil {
			t.Fatalf("create: %v", err)
		}
		_, err := results.Create(ctx, clusteringresultsrepo.CreateClusteringResult{StockID: samsung.ID, CriterionID: profitability.ID, ClusterID: 2})
		if !errors.Is(err, clusteringresultsrepo.ErrClusteringExists) {
			t.Fatalf("got %v, want ErrClusteringExists", err)
		}
	})

	t.Run("unknown criterion", func(t *testing.T) {
		_, err := results.Create(ctx, clusteringresultsrepo.CreateClusteringResult{StockID: samsung.ID, CriterionID: 9999, ClusterID: 1})
		if !errors.Is(err, repositories.ErrInvalidReference) {
			t.Fatalf("got %v, want ErrInvalidReference", err)
		}
	})

	t.Run("assign replaces and keeps int32 bounds", func(t *testing.T) {
		first, err := results.Assign(ctx, samsung.ID, valuation.ID, 4)
		if err != nil {
			t.Fatalf("assign: %v", err)
		}
		second, err := results.Assign(ctx, samsung.ID, valuation.ID, math.MaxInt32)
		if err != nil {
			t.Fatalf("reassign: %v", err)
		}
		if second.ID != first.ID || second.ClusterID != math.MaxInt32 {
			t.Fatalf("reassign = %+v, want row %d in cluster %d", second, first.ID, math.MaxInt32)
		}
		if _, err := results.Assign(ctx, samsung.ID, valuation.ID, math.MaxInt32+1); !errors.Is(err, repositories.ErrInvalidInput) {
			t.Fatalf("got %v, want ErrInvalidInput", err)
		}
	})

	t.Run("clusterings ordered by criterion", func(t *testing.T) {
		records, _, err := results.ListByStock(ctx, samsung.ID, fop.PageStringCursor{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(records) != 2 || records[0].CriterionID != profitability.ID || records[1].CriterionID != valuation.ID {
			t.Fatalf("records = %+v", records)
		}
	})

	t.Run("delete criterion cascades", func(t *testing.T) {
		if _, err := results.Assign(ctx, hynix.ID, profitability.ID, 2); err != nil {
			t.Fatalf("assign: %v", err)
		}
		if err := criteria.Delete(ctx, profitability.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		left, _, err := results.List(ctx, clusteringresultsrepo.ClusteringResultFilter{CriterionID: &profitability.ID}, clusteringresultsrepo.DefaultOrderBy, fop.PageStringCursor{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(left) != 0 {
			t.Errorf("%d results survived their criterion", len(left))
		}
	})

	t.Run("delete stock cascades", func(t *testing.T) {
		if err := stocks.Delete(ctx, samsung.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		records, _, err := results.ListByStock(ctx, samsung.ID, fop.PageStringCursor{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("%d clusterings survived", len(records))
		}
	})
}
