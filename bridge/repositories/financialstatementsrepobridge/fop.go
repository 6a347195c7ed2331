package financialstatementsrepobridge

import (
	"net/http"

	"github.com/jrazmi/stockdata/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/stockdata/core/repositories/financialstatementsrepo"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/web"
)

// PARAMS
type QueryParams struct {
	fopbridge.PageParams
	StockID string
	MinYear string
	MaxYear string
}

func parseQueryParams(r *http.Request) QueryParams {
	q := r.URL.Query()
	return QueryParams{
		PageParams: fopbridge.ParsePageParams(r),
		StockID:    q.Get("stockId"),
		MinYear:    q.Get("minYear"),
		MaxYear:    q.Get("maxYear"),
	}
}

// FILTER
func parseFilter(qp QueryParams) (financialstatementsrepo.FinancialStatementFilter, error) {
	var (
		filter financialstatementsrepo.FinancialStatementFilter
		err    error
	)
	if filter.StockID, err = fopbridge.OptionalInt64("stockId", qp.StockID); err != nil {
		return filter, err
	}
	if filter.MinYear, err = fopbridge.OptionalInt("minYear", qp.MinYear); err != nil {
		return filter, err
	}
	if filter.MaxYear, err = fopbridge.OptionalInt("maxYear", qp.MaxYear); err != nil {
		return filter, err
	}
	return filter, nil
}

// PATH
func parseStatementID(r *http.Request) (int64, error) {
	return fopbridge.ParseID("statement_id", web.Param(r, "statement_id"))
}

func parseStockID(r *http.Request) (int64, error) {
	return fopbridge.ParseID("stock_id", web.Param(r, "stock_id"))
}

// ORDER
var orderByFields = map[string]string{
	"id":              financialstatementsrepo.OrderByPK,
	"year":            financialstatementsrepo.OrderByYear,
	"revenue":         financialstatementsrepo.OrderByRevenue,
	"operatingIncome": financialstatementsrepo.OrderByOperatingIncome,
	"netIncome":       financialstatementsrepo.OrderByNetIncome,
	"eps":             financialstatementsrepo.OrderByEPS,
}

func parseOrderBy(qp QueryParams) (fop.By, error) {
	return qp.OrderBy(orderByFields, financialstatementsrepo.DefaultOrderBy)
}
