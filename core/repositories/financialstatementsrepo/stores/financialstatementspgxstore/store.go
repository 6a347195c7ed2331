// Package financialstatementspgxstore implements
// financialstatementsrepo.Storer on PostgreSQL.
package financialstatementspgxstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/financialstatementsrepo"
	"github.com/jrazmi/stockdata/core/repositories/storeerr"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/postgresdb"
	"github.com/jrazmi/stockdata/sdk/logger"
)

const columns = `id, year, revenue, operating_income, net_income, eps, stock_id`

const insert = `
	INSERT INTO financials_financialstatement (year, revenue, operating_income, net_income, eps, stock_id)
	VALUES (@year, @revenue, @operating_income, @net_income, @eps, @stock_id)`

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// Create inserts a new FinancialStatement
func (s *Store) Create(ctx context.Context, input financialstatementsrepo.CreateFinancialStatement) (financialstatementsrepo.FinancialStatement, error) {
	return s.queryOne(ctx, insert+` RETURNING `+columns, createArgs(input))
}

// Upsert inserts the statement or overwrites the figures already stored for
// the same stock and year.
func (s *Store) Upsert(ctx context.Context, input financialstatementsrepo.CreateFinancialStatement) (financialstatementsrepo.FinancialStatement, error) {
	query := insert + `
		ON CONFLICT (stock_id, year) DO UPDATE SET
			revenue = EXCLUDED.revenue,
			operating_income = EXCLUDED.operating_income,
			net_income = EXCLUDED.net_income,
			eps = EXCLUDED.eps
		RETURNING ` + columns
	return s.queryOne(ctx, query, createArgs(input))
}

// Get retrieves a single FinancialStatement by ID
func (s *Store) Get(ctx context.Context, id int64) (financialstatementsrepo.FinancialStatement, error) {
	return s.queryOne(ctx, `SELECT `+columns+` FROM financials_financialstatement WHERE id = @id`, pgx.NamedArgs{"id": id})
}

// Update modifies an existing FinancialStatement
func (s *Store) Update(ctx context.Context, id int64, input financialstatementsrepo.UpdateFinancialStatement) (financialstatementsrepo.FinancialStatement, error) {
	var fields []string
	data := pgx.NamedArgs{"id": id}

	set := func(column string, value any) {
		fields = append(fields, column+" = @"+column)
		data[column] = value
	}
	if input.Year != nil {
		set("year", *input.Year)
	}
	if input.Revenue != nil {
		set("revenue", *input.Revenue)
	}
	if input.OperatingIncome != nil {
		set("operating_income", *input.OperatingIncome)
	}
	if input.NetIncome != nil {
		set("net_income", *input.NetIncome)
	}
	if input.EPS != nil {
		set("eps", *input.EPS)
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE financials_financialstatement SET %s WHERE id = @id RETURNING %s`, strings.Join(fields, ", "), columns)
	return s.queryOne(ctx, query, data)
}

// Delete removes a FinancialStatement
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM financials_financialstatement WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return storeerr.Postgres(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// List retrieves FinancialStatement records with filtering, ordering, and cursor pagination
func (s *Store) List(ctx context.Context, filter financialstatementsrepo.FinancialStatementFilter, orderBy fop.By, page fop.PageStringCursor) ([]financialstatementsrepo.FinancialStatement, error) {
	data := pgx.NamedArgs{}
	var where postgresdb.Where

	if filter.StockID != nil {
		where.Add("stock_id = @stock_id")
		data["stock_id"] = *filter.StockID
	}
	if filter.MinYear != nil {
		where.Add("year >= @min_year")
		data["min_year"] = *filter.MinYear
	}
	if filter.MaxYear != nil {
		where.Add("year <= @max_year")
		data["max_year"] = *filter.MaxYear
	}

	pk, orderValue, err := financialstatementsrepo.DecodeCursor(page.Cursor, orderBy)
	if err != nil {
		return nil, err
	}
	if err := postgresdb.ApplyCursorPagination(&where, data, orderBy.Field, financialstatementsrepo.OrderByPK, orderValue, pk, orderBy.Direction, false); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`SELECT ` + columns + ` FROM financials_financialstatement`)
	where.AppendTo(&buf)
	if err := postgresdb.AddOrderByClause(&buf, orderBy.Field, financialstatementsrepo.OrderByPK, orderBy.Direction, false); err != nil {
		return nil, err
	}
	postgresdb.AddLimitClause(page.Limit, data, &buf)

	rows, err := s.pool.Query(ctx, buf.String(), data)
	if err != nil {
		return nil, storeerr.Postgres(err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[financialstatementsrepo.FinancialStatement])
	if err != nil {
		return nil, storeerr.Postgres(err)
	}
	return records, nil
}

func (s *Store) queryOne(ctx context.Context, query string, args pgx.NamedArgs) (financialstatementsrepo.FinancialStatement, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return financialstatementsrepo.FinancialStatement{}, storeerr.Postgres(err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[financialstatementsrepo.FinancialStatement])
	if err != nil {
		return financialstatementsrepo.FinancialStatement{}, storeerr.Postgres(err)
	}
	return record, nil
}

func createArgs(input financialstatementsrepo.CreateFinancialStatement) pgx.NamedArgs {
	return pgx.NamedArgs{
		"year":             input.Year,
		"revenue":          input.Revenue,
		"operating_income": input.OperatingIncome,
		"net_income":       input.NetIncome,
		"eps":              input.EPS,
		"stock_id":         input.StockID,
	}
}
