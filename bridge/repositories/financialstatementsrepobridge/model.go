package financialstatementsrepobridge

import "github.com/jrazmi/stockdata/core/repositories/financialstatementsrepo"

// FinancialStatement is the API representation of a yearly statement.
type FinancialStatement struct {
	ID              int64   `json:"id"`
	StockID         int64   `json:"stockId"`
	Year            int     `json:"year"`
	Revenue         int64   `json:"revenue"`
	OperatingIncome int64   `json:"operatingIncome"`
	NetIncome       int64   `json:"netIncome"`
	EPS             float64 `json:"eps"`
}

// CreateFinancialStatementInput is the body of both create and upsert.
type CreateFinancialStatementInput struct {
	StockID         int64   `json:"stockId"`
	Year            int     `json:"year"`
	Revenue         int64   `json:"revenue"`
	OperatingIncome int64   `json:"operatingIncome"`
	NetIncome       int64   `json:"netIncome"`
	EPS             float64 `json:"eps"`
}

type UpdateFinancialStatementInput struct {
	Year            *int     `json:"year"`
	Revenue         *int64   `json:"revenue"`
	OperatingIncome *int64   `json:"operatingIncome"`
	NetIncome       *int64   `json:"netIncome"`
	EPS             *float64 `json:"eps"`
}

func toBridge(fs financialstatementsrepo.FinancialStatement) FinancialStatement {
	return FinancialStatement{
		ID:              fs.ID,
		StockID:         fs.StockID,
		Year:            fs.Year,
		Revenue:         fs.Revenue,
		OperatingIncome: fs.OperatingIncome,
		NetIncome:       fs.NetIncome,
		EPS:             fs.EPS,
	}
}

func toBridgeList(statements []financialstatementsrepo.FinancialStatement) []FinancialStatement {
	out := make([]FinancialStatement, len(statements))
	for i, fs := range statements {
		out[i] = toBridge(fs)
	}
	return out
}

func (in CreateFinancialStatementInput) toRepository() financialstatementsrepo.CreateFinancialStatement {
	return financialstatementsrepo.CreateFinancialStatement{
		StockID:         in.StockID,
		Year:            in.Year,
		Revenue:         in.Revenue,
		OperatingIncome: in.OperatingIncome,
		NetIncome:       in.NetIncome,
		EPS:             in.EPS,
	}
}

func (in UpdateFinancialStatementInput) toRepository() financialstatementsrepo.UpdateFinancialStatement {
	return financialstatementsrepo.UpdateFinancialStatement{
		Year:            in.Year,
		Revenue:         in.Revenue,
		OperatingIncome: in.OperatingIncome,
		NetIncome:       in.NetIncome,
		EPS:             in.EPS,
	}
}
