package stockspgxstore_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo/stores/stockspgxstore"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/postgresdb/pgtest"
	"github.com/jrazmi/stockdata/sdk/logger"
	"github.com/jrazmi/stockdata/sdk/validation"
)

func TestPostgresStocks(t *testing.T) {
	store := stockspgxstore.NewStore(logger.NewDiscard(), pgtest.NewDatabase(t))
	ctx := context.Background()

	marketCap := int64(math.MaxInt32) * 200
	created, err := store.Create(ctx, stocksrepo.CreateStock{StockCode: "005930", StockName: "Samsung Electronics", Market: "KOSPI", MarketCap: &marketCap})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.MarketCap == nil || *created.MarketCap != marketCap || created.CreatedAt.IsZero() {
		t.Fatalf("created = %+v", created)
	}

	t.Run("lookup by code", func(t *testing.T) {
		got, err := store.GetByCode(ctx, "005930")
		if err != nil || got.ID != created.ID {
			t.Fatalf("got %+v, %v", got, err)
		}
		if _, err := store.GetByCode(ctx, "999999"); !errors.Is(err, repositories.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("duplicate code", func(t *testing.T) {
		_, err := store.Create(ctx, stocksrepo.CreateStock{StockCode: "005930", StockName: "Again"})
		if !errors.Is(err, repositories.ErrDuplicate) {
			t.Fatalf("got %v, want ErrDuplicate", err)
		}
	})

	t.Run("code wider than column", func(t *testing.T) {
		_, err := store.Create(ctx, stocksrepo.CreateStock{StockCode: strings.Repeat("9", 21), StockName: "Too long"})
		if !errors.Is(err, repositories.ErrInvalidInput) {
			t.Fatalf("got %v, want ErrInvalidInput", err)
		}
	})

	t.Run("partial update", func(t *testing.T) {
		price := 71200.5
		got, err := store.Update(ctx, created.ID, stocksrepo.UpdateStock{CurrentPrice: &price, Sector: validation.StringPtr("Semiconductors")})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.StockName != created.StockName || got.Sector != "Semiconductors" || got.CurrentPrice == nil || *got.CurrentPrice != price {
			t.Fatalf("updated = %+v", got)
		}
	})

	t.Run("keyset pages", func(t *testing.T) {
		for _, code := range []string{"000660", "035720", "247540"} {
			if _, err := store.Create(ctx, stocksrepo.CreateStock{StockCode: code, StockName: "Stock " + code}); err != nil {
				t.Fatalf("create %s: %v", code, err)
			}
		}

		var codes []string
		page := fop.PageStringCursor{Limit: 3}
		for {
			records, err := store.List(ctx, stocksrepo.StockFilter{}, stocksrepo.DefaultOrderBy, page)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			for _, r := range records {
				codes = append(codes, r.StockCode)
			}
			if len(records) < page.Limit {
				break
			}
			if page.Cursor, err = stocksrepo.EncodeCursor(records[len(records)-1], stocksrepo.DefaultOrderBy); err != nil {
				t.Fatalf("encode: %v", err)
			}
		}
		if strings.Join(codes, ",") != "000660,005930,035720,247540" {
			t.Fatalf("paged codes = %v", codes)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := store.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := store.Delete(ctx, created.ID); !errors.Is(err, repositories.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})
}
