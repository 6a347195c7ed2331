package clusteringresultsrepobridge

import (
	"net/http"

	"github.com/jrazmi/stockdata/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/web"
)

// PARAMS
type QueryParams struct {
	fopbridge.PageParams
	StockID     string
	CriterionID string
	ClusterID   string
}

func parseQueryParams(r *http.Request) QueryParams {
	q := r.URL.Query()
	return QueryParams{
		PageParams:  fopbridge.ParsePageParams(r),
		StockID:     q.Get("stockId"),
		CriterionID: q.Get("criterionId"),
		ClusterID:   q.Get("clusterId"),
	}
}

// FILTER
func parseFilter(qp QueryParams) (clusteringresultsrepo.ClusteringResultFilter, error) {
	var (
		filter clusteringresultsrepo.ClusteringResultFilter
		err    error
	)
	if filter.StockID, err = fopbridge.OptionalInt64("stockId", qp.StockID); err != nil {
		return filter, err
	}
	if filter.CriterionID, err = fopbridge.OptionalInt64("criterionId", qp.CriterionID); err != nil {
		return filter, err
	}
	if filter.ClusterID, err = fopbridge.OptionalInt("clusterId", qp.ClusterID); err != nil {
		return filter, err
	}
	return filter, nil
}

// PATH
func parseResultID(r *http.Request) (int64, error) {
	return fopbridge.ParseID("result_id", web.Param(r, "result_id"))
}

func parseStockID(r *http.Request) (int64, error) {
	return fopbridge.ParseID("stock_id", web.Param(r, "stock_id"))
}

// ORDER
var orderByFields = map[string]string{
	"id":          clusteringresultsrepo.OrderByPK,
	"clusterId":   clusteringresultsrepo.OrderByClusterID,
	"stockId":     clusteringresultsrepo.OrderByStockID,
	"criterionId": clusteringresultsrepo.OrderByCriterionID,
}

func parseOrderBy(qp QueryParams) (fop.By, error) {
	return qp.OrderBy(orderByFields, clusteringresultsrepo.DefaultOrderBy)
}
