package clusteringresultsrepo

import (
	"fmt"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
)

// ClusteringResultFilter holds the available fields a query can be filtered on.
type ClusteringResultFilter struct {
	StockID     *int64
	CriterionID *int64
	ClusterID   *int
}

// Set of fields a list can be ordered by.
const (
	OrderByPK          = "id"
	OrderByClusterID   = "cluster_id"
	OrderByStockID     = "stock_id"
	OrderByCriterionID = "criterion_id"
)

var orderFields = map[string]bool{
	OrderByPK:          true,
	OrderByClusterID:   true,
	OrderByStockID:     true,
	OrderByCriterionID: true,
}

// DefaultOrderBy lists results in creation order.
var DefaultOrderBy = fop.NewBy(OrderByPK, fop.ASC)

// ByStockOrderBy is the order of a stock's clusterings.
var ByStockOrderBy = fop.NewBy(OrderByCriterionID, fop.ASC)

// EncodeCursor builds the token that resumes a listing after r.
func EncodeCursor(r ClusteringResult, orderBy fop.By) (string, error) {
	var value int64
	switch orderBy.Field {
	case OrderByPK:
		value = r.ID
	case OrderByClusterID:
		value = int64(r.ClusterID)
	case OrderByStockID:
		value = r.StockID
	case OrderByCriterionID:
		value = r.CriterionID
	default:
		return "", fmt.Errorf("%w: order field %q", repositories.ErrInvalidInput, orderBy.Field)
	}
	return fop.Cursor[int64, int64]{PK: r.ID, OrderValue: value}.Encode()
}

// DecodeCursor returns the key and order value stored in token. Every
// orderable column is an integer.
func DecodeCursor(token string, orderBy fop.By) (*int64, *int64, error) {
	if token == "" {
		return nil, nil, nil
	}
	if !orderFields[orderBy.Field] {
		return nil, nil, fmt.Errorf("%w: order field %q", repositories.ErrInvalidInput, orderBy.Field)
	}

	c, err := fop.DecodeCursor[int64, int64](token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
	}
	return &c.PK, &c.OrderValue, nil
}
