package financialstatementsrepo

import (
	"fmt"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
)

// FinancialStatementFilter holds the available fields a query can be filtered on.
// MinYear and MaxYear are inclusive.
type FinancialStatementFilter struct {
	StockID *int64
	MinYear *int
	MaxYear *int
}

// Set of fields a list can be ordered by.
const (
	OrderByPK              = "id"
	OrderByYear            = "year"
	OrderByRevenue         = "revenue"
	OrderByOperatingIncome = "operating_income"
	OrderByNetIncome       = "net_income"
	OrderByEPS             = "eps"
)

var orderFields = map[string]bool{
	OrderByPK:              true,
	OrderByYear:            true,
	OrderByRevenue:         true,
	OrderByOperatingIncome: true,
	OrderByNetIncome:       true,
	OrderByEPS:             true,
}

// DefaultOrderBy is newest year first.
var DefaultOrderBy = fop.NewBy(OrderByYear, fop.DESC)

// EncodeCursor builds the token that resumes a listing after fs.
func EncodeCursor(fs FinancialStatement, orderBy fop.By) (string, error) {
	switch orderBy.Field {
	case OrderByPK:
		return fop.Cursor[int64, int64]{PK: fs.ID, OrderValue: fs.ID}.Encode()
	case OrderByYear:
		return fop.Cursor[int64, int64]{PK: fs.ID, OrderValue: int64(fs.Year)}.Encode()
	case OrderByRevenue:
		return fop.Cursor[int64, int64]{PK: fs.ID, OrderValue: fs.Revenue}.Encode()
	case OrderByOperatingIncome:
		return fop.Cursor[int64, int64]{PK: fs.ID, OrderValue: fs.OperatingIncome}.Encode()
	case OrderByNetIncome:
		return fop.Cursor[int64, int64]{PK: fs.ID, OrderValue: fs.NetIncome}.Encode()
	case OrderByEPS:
		return fop.Cursor[int64, float64]{PK: fs.ID, OrderValue: fs.EPS}.Encode()
	}
	return "", fmt.Errorf("%w: order field %q", repositories.ErrInvalidInput, orderBy.Field)
}

// DecodeCursor returns the key and order value stored in token.
func DecodeCursor(token string, orderBy fop.By) (*int64, *any, error) {
	if token == "" {
		return nil, nil, nil
	}
	if !orderFields[orderBy.Field] {
		return nil, nil, fmt.Errorf("%w: order field %q", repositories.ErrInvalidInput, orderBy.Field)
	}

	var (
		pk    int64
		value any
	)
	if orderBy.Field == OrderByEPS {
		c, err := fop.DecodeCursor[int64, float64](token)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
		}
		pk, value = c.PK, c.OrderValue
	} else {
		c, err := fop.DecodeCursor[int64, int64](token)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
		}
		pk, value = c.PK, c.OrderValue
	}
	return &pk, &value, nil
}
