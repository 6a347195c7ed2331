package financialstatementsrepobridge_test

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/jrazmi/stockdata/bridge/repositories/financialstatementsrepobridge"
	"github.com/jrazmi/stockdata/bridge/scaffolding/bridgetest"
	"github.com/jrazmi/stockdata/core/repositories/financialstatementsrepo"
	"github.com/jrazmi/stockdata/core/repositories/financialstatementsrepo/stores/financialstatementssqlitestore"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo/stores/stockssqlitestore"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb/sqlitetest"
	"github.com/jrazmi/stockdata/sdk/logger"
)

type fixture struct {
	h      http.Handler
	stocks *stocksrepo.Repository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	log := logger.NewDiscard()
	db := sqlitetest.NewDatabase(t)
	stocks := stocksrepo.NewRepository(log, stockssqlitestore.NewStore(log, db))

	h, group := bridgetest.NewHandler()
	financialstatementsrepobridge.AddHttpRoutes(group, financialstatementsrepobridge.Config{
		Log:        log,
		Repository: financialstatementsrepo.NewRepository(log, financialstatementssqlitestore.NewStore(log, db)),
		Stocks:     stocks,
	})
	return fixture{h: h, stocks: stocks}
}

func (f fixture) stock(t *testing.T, code string) int64 {
	t.Helper()
	s, err := f.stocks.Create(context.Background(), stocksrepo.CreateStock{StockCode: code, StockName: "Stock " + code})
	if err != nil {
		t.Fatalf("create stock: %v", err)
	}
	return s.ID
}

func (f fixture) statement(t *testing.T, stockID int64, year int) financialstatementsrepobridge.FinancialStatement {
	t.Helper()
	rec := bridgetest.Do(t, f.h, http.MethodPost, "/financial-statements", financialstatementsrepobridge.CreateFinancialStatementInput{
		StockID:         stockID,
		Year:            year,
		Revenue:         int64(year) * 1_000_000_000,
		OperatingIncome: int64(year) * 100_000_000,
		NetIncome:       int64(year) * 10_000_000,
		EPS:             float64(year) / 10,
	})
	bridgetest.ExpectStatus(t, rec, http.StatusCreated)
	return bridgetest.Decode[bridgetest.Record[financialstatementsrepobridge.FinancialStatement]](t, rec).Record
}

func path(format string, id int64) string {
	return format + strconv.FormatInt(id, 10)
}

func TestStatementCreateAndConflicts(t *testing.T) {
	f := newFixture(t)
	stockID := f.stock(t, "005930")

	rec := bridgetest.Do(t, f.h, http.MethodPost, "/financial-statements", financialstatementsrepobridge.CreateFinancialStatementInput{
		StockID:         stockID,
		Year:            2023,
		Revenue:         258_935_494_000_000,
		OperatingIncome: 6_566_976_000_000,
		NetIncome:       15_487_100_000_000,
		EPS:             2131.37,
	})
	bridgetest.ExpectStatus(t, rec, http.StatusCreated)
	got := bridgetest.Decode[bridgetest.Record[financialstatementsrepobridge.FinancialStatement]](t, rec).Record
	if got.Revenue != 258_935_494_000_000 || got.EPS != 2131.37 {
		t.Fatalf("statement = %+v", got)
	}

	tests := []struct {
		name   string
		input  financialstatementsrepobridge.CreateFinancialStatementInput
		status int
	}{
		{"same stock and year", financialstatementsrepobridge.CreateFinancialStatementInput{StockID: stockID, Year: 2023}, http.StatusConflict},
		{"unknown stock", financialstatementsrepobridge.CreateFinancialStatementInput{StockID: 999, Year: 2023}, http.StatusBadRequest},
		{"year out of range", financialstatementsrepobridge.CreateFinancialStatementInput{StockID: stockID, Year: 1800}, http.StatusBadRequest},
		{"missing stock", financialstatementsrepobridge.CreateFinancialStatementInput{Year: 2023}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := bridgetest.Do(t, f.h, http.MethodPost, "/financial-statements", tt.input)
			bridgetest.ExpectStatus(t, rec, tt.status)
		})
	}

	// Another year for the same stock is fine.
	f.statement(t, stockID, 2022)
}

func TestStockFinancialsNewestFirst(t *testing.T) {
	f := newFixture(t)
	stockID := f.stock(t, "000660")
	other := f.stock(t, "035420")
	for _, year := range []int{2021, 2023, 2020, 2022} {
		f.statement(t, stockID, year)
	}
	f.statement(t, other, 2024)

	var years []int
	p := path("/stocks/", stockID) + "/financials?limit=3"
	for range 3 {
		rec := bridgetest.Do(t, f.h, http.MethodGet, p, nil)
		bridgetest.ExpectStatus(t, rec, http.StatusOK)
		page := bridgetest.Decode[bridgetest.Page[financialstatementsrepobridge.FinancialStatement]](t, rec)
		for _, fs := range page.Records {
			if fs.StockID != stockID {
				t.Fatalf("statement of stock %d listed under %d", fs.StockID, stockID)
			}
			years = append(years, fs.Year)
		}
		if page.PageInfo.NextCursor == "" {
			break
		}
		p = path("/stocks/", stockID) + "/financials?limit=3&cursor=" + url.QueryEscape(page.PageInfo.NextCursor)
	}

	want := []int{2023, 2022, 2021, 2020}
	if len(years) != len(want) {
		t.Fatalf("years = %v, want %v", years, want)
	}
	for i := range want {
		if years[i] != want[i] {
			t.Fatalf("years = %v, want %v", years, want)
		}
	}

	rec := bridgetest.Do(t, f.h, http.MethodGet, "/stocks/999/financials", nil)
	bridgetest.ExpectStatus(t, rec, http.StatusNotFound)
}

func TestStatementListFilters(t *testing.T) {
	f := newFixture(t)
	stockID := f.stock(t, "005380")
	for _, year := range []int{2019, 2020, 2021, 2022} {
		f.statement(t, stockID, year)
	}

	rec := bridgetest.Do(t, f.h, http.MethodGet, "/financial-statements?minYear=2020&maxYear=2021&order=year,ASC", nil)
	bridgetest.ExpectStatus(t, rec, http.StatusOK)
	page := bridgetest.Decode[bridgetest.Page[financialstatementsrepobridge.FinancialStatement]](t, rec)
	if len(page.Records) != 2 || page.Records[0].Year != 2020 || page.Records[1].Year != 2021 {
		t.Fatalf("records = %+v", page.Records)
	}

	rec = bridgetest.Do(t, f.h, http.MethodGet, "/financial-statements?minYear=2022&maxYear=2020", nil)
	bridgetest.ExpectStatus(t, rec, http.StatusBadRequest)

	rec = bridgetest.Do(t, f.h, http.MethodGet, "/financial-statements?stockId=abc", nil)
	bridgetest.ExpectStatus(t, rec, http.StatusBadRequest)
}

func TestStatementUpsertUpdateDelete(t *testing.T) {
	f := newFixture(t)
	stockID := f.stock(t, "051910")
	created := f.statement(t, stockID, 2023)

	rec := bridgetest.Do(t, f.h, http.MethodPut, "/financial-statements", financialstatementsrepobridge.CreateFinancialStatementInput{
		StockID:   stockID,
		Year:      2023,
		Revenue:   1,
		NetIncome: -5,
		EPS:       -0.25,
	})
	bridgetest.ExpectStatus(t, rec, http.StatusOK)
	upserted := bridgetest.Decode[bridgetest.Record[financialstatementsrepobridge.FinancialStatement]](t, rec).Record
	if upserted.ID != created.ID || upserted.Revenue != 1 || upserted.NetIncome != -5 {
		t.Fatalf("upserted = %+v, want row %d replaced", upserted, created.ID)
	}

	eps := 12.5
	rec = bridgetest.Do(t, f.h, http.MethodPut, path("/financial-statements/", created.ID), financialstatementsrepobridge.UpdateFinancialStatementInput{EPS: &eps})
	bridgetest.ExpectStatus(t, rec, http.StatusOK)
	if got := bridgetest.Decode[bridgetest.Record[financialstatementsrepobridge.FinancialStatement]](t, rec).Record; got.EPS != eps || got.Revenue != 1 {
		t.Fatalf("updated = %+v", got)
	}

	rec = bridgetest.Do(t, f.h, http.MethodDelete, path("/financial-statements/", created.ID), nil)
	bridgetest.ExpectStatus(t, rec, http.StatusNoContent)

	rec = bridgetest.Do(t, f.h, http.MethodGet, path("/financial-statements/", created.ID), nil)
	bridgetest.ExpectStatus(t, rec, http.StatusNotFound)

	rec = bridgetest.Do(t, f.h, http.MethodDelete, path("/financial-statements/", created.ID), nil)
	bridgetest.ExpectStatus(t, rec, http.StatusNotFound)
}
