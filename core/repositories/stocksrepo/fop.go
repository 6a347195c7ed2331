package stocksrepo

import (
	"fmt"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
)

// StockFilter holds the available fields a query can be filtered on.
type StockFilter struct {
	StockCode  *string
	Market     *string
	Sector     *string
	SearchTerm *string // matches stock_code or stock_name
}

// Set of fields a list can be ordered by.
const (
	OrderByPK        = "id"
	OrderByStockCode = "stock_code"
	OrderByStockName = "stock_name"
	OrderByMarket    = "market"
)

// DefaultOrderBy lists stocks by ticker code.
var DefaultOrderBy = fop.NewBy(OrderByStockCode, fop.ASC)

var orderFields = map[string]bool{
	OrderByPK:        true,
	OrderByStockCode: true,
	OrderByStockName: true,
	OrderByMarket:    true,
}

// EncodeCursor builds the token that resumes a listing after s.
func EncodeCursor(s Stock, orderBy fop.By) (string, error) {
	switch orderBy.Field {
	case OrderByPK:
		return fop.Cursor[int64, int64]{PK: s.ID, OrderValue: s.ID}.Encode()
	case OrderByStockCode:
		return fop.Cursor[int64, string]{PK: s.ID, OrderValue: s.StockCode}.Encode()
	case OrderByStockName:
		return fop.Cursor[int64, string]{PK: s.ID, OrderValue: s.StockName}.Encode()
	case OrderByMarket:
		return fop.Cursor[int64, string]{PK: s.ID, OrderValue: s.Market}.Encode()
	}
	return "", fmt.Errorf("%w: order field %q", repositories.ErrInvalidInput, orderBy.Field)
}

// DecodeCursor returns the key and order value stored in token. Both are nil
// for an empty token.
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
	case OrderByStockCode, OrderByStockName, OrderByMarket:
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
