package stocksrepo_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/sdk/logger"
	"github.com/jrazmi/stockdata/sdk/validation"
)

type stubStorer struct {
	stocks  map[int64]stocksrepo.Stock
	nextID  int64
	created int
	listErr error
}

func newStub() *stubStorer {
	return &stubStorer{stocks: map[int64]stocksrepo.Stock{}, nextID: 1}
}

func (s *stubStorer) Create(ctx context.Context, in stocksrepo.CreateStock) (stocksrepo.Stock, error) {
	for _, st := range s.stocks {
		if st.StockCode == in.StockCode {
			return stocksrepo.Stock{}, repositories.ErrDuplicate
		}
	}
	s.created++
	st := stocksrepo.Stock{ID: s.nextID, StockCode: in.StockCode, StockName: in.StockName, Market: in.Market}
	s.stocks[st.ID] = st
	s.nextID++
	return st, nil
}

func (s *stubStorer) Get(ctx context.Context, id int64) (stocksrepo.Stock, error) {
	st, ok := s.stocks[id]
	if !ok {
		return stocksrepo.Stock{}, repositories.ErrNotFound
	}
	return st, nil
}

func (s *stubStorer) GetByCode(ctx context.Context, code string) (stocksrepo.Stock, error) {
	for _, st := range s.stocks {
		if st.StockCode == code {
			return st, nil
		}
	}
	return stocksrepo.Stock{}, repositories.ErrNotFound
}

func (s *stubStorer) List(ctx context.Context, filter stocksrepo.StockFilter, orderBy fop.By, page fop.PageStringCursor) ([]stocksrepo.Stock, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []stocksrepo.Stock
	for id := int64(1); id < s.nextID && len(out) < page.Limit; id++ {
		if st, ok := s.stocks[id]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *stubStorer) Update(ctx context.Context, id int64, in stocksrepo.UpdateStock) (stocksrepo.Stock, error) {
	st, ok := s.stocks[id]
	if !ok {
		return stocksrepo.Stock{}, repositories.ErrNotFound
	}
	if in.StockName != nil {
		st.StockName = *in.StockName
	}
	s.stocks[id] = st
	return st, nil
}

func (s *stubStorer) Delete(ctx context.Context, id int64) error {
	if _, ok := s.stocks[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.stocks, id)
	return nil
}

func newRepo(t *testing.T) (*stocksrepo.Repository, *stubStorer) {
	t.Helper()
	stub := newStub()
	return stocksrepo.NewRepository(logger.NewDiscard(), stub), stub
}

func TestCreateValidation(t *testing.T) {
	repo, stub := newRepo(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input stocksrepo.CreateStock
		field string
	}{
		{"missing code", stocksrepo.CreateStock{StockName: "Samsung Electronics"}, "stock_code"},
		{"missing name", stocksrepo.CreateStock{StockCode: "005930"}, "stock_name"},
		{"long code", stocksrepo.CreateStock{StockCode: strings.Repeat("9", 21), StockName: "x"}, "stock_code"},
		{"long sector", stocksrepo.CreateStock{StockCode: "005930", StockName: "x", Sector: strings.Repeat("s", 101)}, "sector"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tt.input)
			if !errors.Is(err, repositories.ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
			var fe validation.FieldErrors
			if !errors.As(err, &fe) || fe[0].Field != tt.field {
				t.Errorf("got field errors %v, want %s", fe, tt.field)
			}
		})
	}

	if stub.created != 0 {
		t.Errorf("invalid input reached the store %d times", stub.created)
	}
}

func TestCreateDuplicateCode(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	in := stocksrepo.CreateStock{StockCode: "005930", StockName: "Samsung Electronics", Market: "KOSPI"}
	if _, err := repo.Create(ctx, in); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := repo.Create(ctx, in)
	if !errors.Is(err, stocksrepo.ErrStockCodeExists) {
		t.Fatalf("got %v, want ErrStockCodeExists", err)
	}
	if !errors.Is(err, repositories.ErrDuplicate) {
		t.Error("domain error must still match repositories.ErrDuplicate")
	}
}

func TestGetAndDeleteNotFound(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	if _, err := repo.Get(ctx, 99); !errors.Is(err, stocksrepo.ErrStockNotFound) {
		t.Errorf("Get: got %v, want ErrStockNotFound", err)
	}
	if _, err := repo.GetByCode(ctx, "000000"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("GetByCode: got %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, 99); !errors.Is(err, stocksrepo.ErrStockNotFound) {
		t.Errorf("Delete: got %v, want ErrStockNotFound", err)
	}
	name := "renamed"
	if _, err := repo.Update(ctx, 99, stocksrepo.UpdateStock{StockName: &name}); !errors.Is(err, stocksrepo.ErrStockNotFound) {
		t.Errorf("Update: got %v, want ErrStockNotFound", err)
	}
}

func TestUpdateRejectsBlankName(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	st, err := repo.Create(ctx, stocksrepo.CreateStock{StockCode: "000660", StockName: "SK hynix"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	blank := " "
	if _, err := repo.Update(ctx, st.ID, stocksrepo.UpdateStock{StockName: &blank}); !errors.Is(err, repositories.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestListPageInfo(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	for _, code := range []string{"000660", "005930", "035420"} {
		if _, err := repo.Create(ctx, stocksrepo.CreateStock{StockCode: code, StockName: "n" + code}); err != nil {
			t.Fatalf("create %s: %v", code, err)
		}
	}

	orderBy := fop.NewBy(stocksrepo.OrderByPK, fop.ASC)
	records, info, err := repo.List(ctx, stocksrepo.StockFilter{}, orderBy, fop.PageStringCursor{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || info.NextCursor == "" {
		t.Fatalf("got %d records, info %+v", len(records), info)
	}

	pk, _, err := stocksrepo.DecodeCursor(info.NextCursor, orderBy)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *pk != records[1].ID {
		t.Errorf("cursor pk = %d, want %d", *pk, records[1].ID)
	}

	_, _, err = repo.List(ctx, stocksrepo.StockFilter{}, fop.NewBy("pbr", fop.ASC), fop.PageStringCursor{Limit: 2})
	if !errors.Is(err, repositories.ErrInvalidInput) {
		t.Errorf("unknown order field: got %v", err)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, _, err := stocksrepo.DecodeCursor("not-base64!", stocksrepo.DefaultOrderBy)
	if !errors.Is(err, repositories.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}

	pk, value, err := stocksrepo.DecodeCursor("", stocksrepo.DefaultOrderBy)
	if pk != nil || value != nil || err != nil {
		t.Fatalf("empty cursor: %v %v %v", pk, value, err)
	}
}
