package financialstatementsrepo

// FinancialStatement holds one fiscal year of a stock's results. Money
// columns are 64-bit so large caps do not overflow.
type FinancialStatement struct {
	ID              int64   `db:"id"`
	Year            int     `db:"year"`
	Revenue         int64   `db:"revenue"`
	OperatingIncome int64   `db:"operating_income"`
	NetIncome       int64   `db:"net_income"`
	EPS             float64 `db:"eps"`
	StockID         int64   `db:"stock_id"`
}

// CreateFinancialStatement contains fields for creating a new statement.
type CreateFinancialStatement struct {
	StockID         int64
	Year            int
	Revenue         int64
	OperatingIncome int64
	NetIncome       int64
	EPS             float64
}

// UpdateFinancialStatement contains fields for updating a statement.
// All fields are optional to support partial updates.
type UpdateFinancialStatement struct {
	Year            *int
	Revenue         *int64
	OperatingIncome *int64
	NetIncome       *int64
	EPS             *float64
}
