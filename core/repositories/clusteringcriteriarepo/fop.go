package clusteringcriteriarepo

import (
	"fmt"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
)

// ClusteringCriterionFilter holds the available fields a query can be filtered on.
type ClusteringCriterionFilter struct {
	Name       *string
	SearchTerm *string
}

// Set of fields a list can be ordered by.
const (
	OrderByPK   = "id"
	OrderByName = "name"
)

// DefaultOrderBy lists criteria in creation order.
var DefaultOrderBy = fop.NewBy(OrderByPK, fop.ASC)

// EncodeCursor builds the token that resumes a listing after c.
func EncodeCursor(c ClusteringCriterion, orderBy fop.By) (string, error) {
	switch orderBy.Field {
	case OrderByPK:
		return fop.Cursor[int64, int64]{PK: c.ID, OrderValue: c.ID}.Encode()
	case OrderByName:
		return fop.Cursor[int64, string]{PK: c.ID, OrderValue: c.Name}.Encode()
	}
	return "", fmt.Errorf("%w: order field %q", repositories.ErrInvalidInput, orderBy.Field)
}

// DecodeCursor returns the key and order value stored in token.
func DecodeCursor(token string, orderBy fop.By) (*int64, *any, error) {
	if token == "" {
		return nil, nil, nil
	}

	var (
		pk    int64
		value any
	)
	switch orderBy.Field {
	case OrderByPK:
		c, err := fop.DecodeCursor[int64, int64](token)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
		}
		pk, value = c.PK, c.OrderValue
	case OrderByName:
		c, err := fop.DecodeCursor[int64, string](token)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
		}
		pk, value = c.PK, c.OrderValue
	default:
		return nil, nil, fmt.Errorf("%w: order field %q", repositories.ErrInvalidInput, orderBy.Field)
	}
	return &pk, &value, nil
}
