package clusteringcriteriapgxstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo/stores/clusteringcriteriapgxstore"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/postgresdb/pgtest"
	"github.com/jrazmi/stockdata/sdk/logger"
	"github.com/jrazmi/stockdata/sdk/validation"
)

func TestPostgresCriteria(t *testing.T) {
	store := clusteringcriteriapgxstore.NewStore(logger.NewDiscard(), pgtest.NewDatabase(t))
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"profitability", "valuation", "growth"} {
		c, err := store.Create(ctx, clusteringcriteriarepo.CreateClusteringCriterion{Name: name})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, c.ID)
	}

	got, err := store.Update(ctx, ids[2], clusteringcriteriarepo.UpdateClusteringCriterion{Name: validation.StringPtr("revenue growth")})
	if err != nil || got.Name != "revenue growth" {
		t.Fatalf("update = %+v, %v", got, err)
	}

	records, err := store.List(ctx, clusteringcriteriarepo.ClusteringCriterionFilter{}, clusteringcriteriarepo.DefaultOrderBy, fop.PageStringCursor{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 || records[0].ID != ids[0] || records[2].Name != "revenue growth" {
		t.Fatalf("records = %+v", records)
	}

	if err := store.Delete(ctx, ids[0]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, ids[0]); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, err := store.Update(ctx, ids[0], clusteringcriteriarepo.UpdateClusteringCriterion{Name: validation.StringPtr("x")}); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("update missing: got %v, want ErrNotFound", err)
	}
}
