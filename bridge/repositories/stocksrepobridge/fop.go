package stocksrepobridge

import (
	"net/http"

	"github.com/jrazmi/stockdata/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/web"
)

// PARAMS
type QueryParams struct {
	fopbridge.PageParams
	StockCode  string
	Market     string
	Sector     string
	SearchTerm string
}

func parseQueryParams(r *http.Request) QueryParams {
	q := r.URL.Query()
	return QueryParams{
		PageParams: fopbridge.ParsePageParams(r),
		StockCode:  q.Get("stockCode"),
		Market:     q.Get("market"),
		Sector:     q.Get("sector"),
		SearchTerm: q.Get("searchTerm"),
	}
}

// FILTER
func parseFilter(qp QueryParams) stocksrepo.StockFilter {
	return stocksrepo.StockFilter{
		StockCode:  fopbridge.OptionalString(qp.StockCode),
		Market:     fopbridge.OptionalString(qp.Market),
		Sector:     fopbridge.OptionalString(qp.Sector),
		SearchTerm: fopbridge.OptionalString(qp.SearchTerm),
	}
}

// PATH
type queryPath struct {
	StockID   int64
	StockCode string
}

func parsePath(r *http.Request) (queryPath, error) {
	var qp queryPath
	if v := web.Param(r, "stock_id"); v != "" {
		id, err := fopbridge.ParseID("stock_id", v)
		if err != nil {
			return queryPath{}, err
		}
		qp.StockID = id
	}
	qp.StockCode = web.Param(r, "stock_code")
	return qp, nil
}

// ORDER
var orderByFields = map[string]string{
	"id":        stocksrepo.OrderByPK,
	"stockCode": stocksrepo.OrderByStockCode,
	"stockName": stocksrepo.OrderByStockName,
	"market":    stocksrepo.OrderByMarket,
}

func parseOrderBy(qp QueryParams) (fop.By, error) {
	return qp.OrderBy(orderByFields, stocksrepo.DefaultOrderBy)
}
