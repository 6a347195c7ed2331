// Package stockspgxstore implements stocksrepo.Storer on PostgreSQL.
package stockspgxstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/core/repositories/storeerr"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/postgresdb"
	"github.com/jrazmi/stockdata/sdk/logger"
)

const columns = `id, stock_code, stock_name, market, sector, current_price, market_cap, per, pbr, created_at, updated_at`

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

// Create inserts a new Stock
func (s *Store) Create(ctx context.Context, input stocksrepo.CreateStock) (stocksrepo.Stock, error) {
	query := `
		INSERT INTO stocks_stock (stock_code, stock_name, market, sector, current_price, market_cap, per, pbr, created_at, updated_at)
		VALUES (@stock_code, @stock_name, @market, @sector, @current_price, @market_cap, @per, @pbr, @now, @now)
		RETURNING ` + columns

	args := pgx.NamedArgs{
		"stock_code":    input.StockCode,
		"stock_name":    input.StockName,
		"market":        input.Market,
		"sector":        input.Sector,
		"current_price": input.CurrentPrice,
		"market_cap":    input.MarketCap,
		"per":           input.PER,
		"pbr":           input.PBR,
		"now":           time.Now().UTC(),
	}

	return s.queryOne(ctx, query, args)
}

// Get retrieves a single Stock by ID
func (s *Store) Get(ctx context.Context, id int64) (stocksrepo.Stock, error) {
	query := `SELECT ` + columns + ` FROM stocks_stock WHERE id = @id`
	return s.queryOne(ctx, query, pgx.NamedArgs{"id": id})
}

// GetByCode retrieves a single Stock by its ticker code
func (s *Store) GetByCode(ctx context.Context, code string) (stocksrepo.Stock, error) {
	query := `SELECT ` + columns + ` FROM stocks_stock WHERE stock_code = @stock_code`
	return s.queryOne(ctx, query, pgx.NamedArgs{"stock_code": code})
}

// Update modifies an existing Stock
func (s *Store) Update(ctx context.Context, id int64, input stocksrepo.UpdateStock) (stocksrepo.Stock, error) {
	fields := []string{"updated_at = @updated_at"}
	data := pgx.NamedArgs{
		"id":         id,
		"updated_at": time.Now().UTC(),
	}

	set := func(column string, value any) {
		fields = append(fields, column+" = @"+column)
		data[column] = value
	}
	if input.StockCode != nil {
		set("stock_code", *input.StockCode)
	}
	if input.StockName != nil {
		set("stock_name", *input.StockName)
	}
	if input.Market != nil {
		set("market", *input.Market)
	}
	if input.Sector != nil {
		set("sector", *input.Sector)
	}
	if input.CurrentPrice != nil {
		set("current_price", *input.CurrentPrice)
	}
	if input.MarketCap != nil {
		set("market_cap", *input.MarketCap)
	}
	if input.PER != nil {
		set("per", *input.PER)
	}
	if input.PBR != nil {
		set("pbr", *input.PBR)
	}

	query := fmt.Sprintf(`UPDATE stocks_stock SET %s WHERE id = @id RETURNING %s`, strings.Join(fields, ", "), columns)
	return s.queryOne(ctx, query, data)
}

// Delete removes a Stock. Dependent rows go with it through ON DELETE CASCADE.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM stocks_stock WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return storeerr.Postgres(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// List retrieves Stock records with filtering, ordering, and cursor pagination
func (s *Store) List(ctx context.Context, filter stocksrepo.StockFilter, orderBy fop.By, page fop.PageStringCursor) ([]stocksrepo.Stock, error) {
	data := pgx.NamedArgs{}
	var where postgresdb.Where

	if filter.StockCode != nil {
		where.Add("stock_code = @stock_code")
		data["stock_code"] = *filter.StockCode
	}
	if filter.Market != nil {
		where.Add("market = @market")
		data["market"] = *filter.Market
	}
	if filter.Sector != nil {
		where.Add("sector = @sector")
		data["sector"] = *filter.Sector
	}
	if filter.SearchTerm != nil {
		where.Add("(stock_code ILIKE @search_term OR stock_name ILIKE @search_term)")
		data["search_term"] = "%" + *filter.SearchTerm + "%"
	}

	pk, orderValue, err := stocksrepo.DecodeCursor(page.Cursor, orderBy)
	if err != nil {
		return nil, err
	}
	if err := postgresdb.ApplyCursorPagination(&where, data, orderBy.Field, stocksrepo.OrderByPK, orderValue, pk, orderBy.Direction, false); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`SELECT ` + columns + ` FROM stocks_stock`)
	where.AppendTo(&buf)
	if err := postgresdb.AddOrderByClause(&buf, orderBy.Field, stocksrepo.OrderByPK, orderBy.Direction, false); err != nil {
		return nil, err
	}
	postgresdb.AddLimitClause(page.Limit, data, &buf)

	rows, err := s.pool.Query(ctx, buf.String(), data)
	if err != nil {
		return nil, storeerr.Postgres(err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[stocksrepo.Stock])
	if err != nil {
		return nil, storeerr.Postgres(err)
	}
	return records, nil
}

func (s *Store) queryOne(ctx context.Context, query string, args pgx.NamedArgs) (stocksrepo.Stock, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return stocksrepo.Stock{}, storeerr.Postgres(err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[stocksrepo.Stock])
	if err != nil {
		return stocksrepo.Stock{}, storeerr.Postgres(err)
	}
	return record, nil
}
