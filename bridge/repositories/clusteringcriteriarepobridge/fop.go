package clusteringcriteriarepobridge

import (
	"net/http"

	"github.com/jrazmi/stockdata/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/web"
)

// PARAMS
type QueryParams struct {
	fopbridge.PageParams
	Name       string
	SearchTerm string
}

func parseQueryParams(r *http.Request) QueryParams {
	q := r.URL.Query()
	return QueryParams{
		PageParams: fopbridge.ParsePageParams(r),
		Name:       q.Get("name"),
		SearchTerm: q.Get("searchTerm"),
	}
}

// FILTER
func parseFilter(qp QueryParams) clusteringcriteriarepo.ClusteringCriterionFilter {
	return clusteringcriteriarepo.ClusteringCriterionFilter{
		Name:       fopbridge.OptionalString(qp.Name),
		SearchTerm: fopbridge.OptionalString(qp.SearchTerm),
	}
}

// PATH
func parseCriterionID(r *http.Request) (int64, error) {
	return fopbridge.ParseID("criterion_id", web.Param(r, "criterion_id"))
}

// ORDER
var orderByFields = map[string]string{
	"id":   clusteringcriteriarepo.OrderByPK,
	"name": clusteringcriteriarepo.OrderByName,
}

func parseOrderBy(qp QueryParams) (fop.By, error) {
	return qp.OrderBy(orderByFields, clusteringcriteriarepo.DefaultOrderBy)
}
