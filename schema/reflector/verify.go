package reflector

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// TableExpectation describes what a table must look like.
type TableExpectation struct {
	Table   string
	Columns []string
	// UniqueTogether lists column sets that must be covered by a unique index.
	UniqueTogether [][]string
	// Cascades maps a column to the table its foreign key must reference with
	// ON DELETE CASCADE.
	Cascades map[string]string
}

// Violation is one way a reflected schema differs from an expectation.
type Violation struct {
	Table   string `json:"table"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Table + ": " + v.Message
}

// StockDataExpectations is the schema the stock data repositories rely on.
func StockDataExpectations() []TableExpectation {
	return []TableExpectation{
		{
			Table:   "stocks_stock",
			Columns: []string{"id", "stock_code", "stock_name", "market", "sector", "current_price", "market_cap", "per", "pbr", "created_at", "updated_at"},
			UniqueTogether: [][]string{
				{"stock_code"},
			},
		},
		{
			Table:   "analysis_clusteringcriterion",
			Columns: []string{"id", "name"},
		},
		{
			Table:   "analysis_clusteringresult",
			Columns: []string{"id", "cluster_id", "criterion_id", "stock_id"},
			UniqueTogether: [][]string{
				{"stock_id", "criterion_id"},
			},
			Cascades: map[string]string{
				"stock_id":     "stocks_stock",
				"criterion_id": "analysis_clusteringcriterion",
			},
		},
		{
			Table:   "financials_financialstatement",
			Columns: []string{"id", "year", "revenue", "operating_income", "net_income", "eps", "stock_id"},
			UniqueTogether: [][]string{
				{"stock_id", "year"},
			},
			Cascades: map[string]string{
				"stock_id": "stocks_stock",
			},
		},
	}
}

// Verify checks schema against expectations. An empty result means every
// expectation holds.
func Verify(schema *ReflectedSchema, expectations []TableExpectation) []Violation {
	var violations []Violation
	add := func(table, format string, args ...any) {
		violations = append(violations, Violation{Table: table, Message: fmt.Sprintf(format, args...)})
	}

	for _, exp := range expectations {
		table, ok := schema.Tables[exp.Table]
		if !ok {
			add(exp.Table, "table is missing")
			continue
		}

		for _, name := range exp.Columns {
			if _, ok := table.Column(name); !ok {
				add(exp.Table, "column %s is missing", name)
			}
		}

		for _, cols := range exp.UniqueTogether {
			if !hasUnique(table, cols) {
				add(exp.Table, "no unique index on (%s)", strings.Join(cols, ", "))
			}
		}

		for _, col := range slices.Sorted(maps.Keys(exp.Cascades)) {
			ref := exp.Cascades[col]
			fk, ok := foreignKey(table, col)
			switch {
			case !ok:
				add(exp.Table, "column %s has no foreign key", col)
			case fk.RefTable != ref:
				add(exp.Table, "column %s references %s, want %s", col, fk.RefTable, ref)
			case fk.OnDelete != "CASCADE":
				add(exp.Table, "foreign key %s deletes with %s, want CASCADE", col, fk.OnDelete)
			}
		}
	}

	return violations
}

func hasUnique(table *TableInfo, cols []string) bool {
	want := slices.Sorted(slices.Values(cols))
	for _, idx := range table.Indexes {
		if idx.Unique && slices.Equal(slices.Sorted(slices.Values(idx.Columns)), want) {
			return true
		}
	}
	return false
}

func foreignKey(table *TableInfo, col string) (ForeignKeyInfo, bool) {
	for _, fk := range table.ForeignKeys {
		if fk.ColumnName == col {
			return fk, true
		}
	}
	return ForeignKeyInfo{}, false
}
