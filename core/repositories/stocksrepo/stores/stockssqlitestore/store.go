// Package stockssqlitestore implements stocksrepo.Storer on SQLite.
package stockssqlitestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/core/repositories/storeerr"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb"
	"github.com/jrazmi/stockdata/sdk/logger"
)

const columns = `id, stock_code, stock_name, market, sector, current_price, market_cap, per, pbr, created_at, updated_at`

type Store struct {
	log *logger.Logger
	db  *sqlx.DB
}

func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// Create inserts a new Stock. Rows are re-read after writing so timestamp
// columns are decoded through their declared type.
func (s *Store) Create(ctx context.Context, input stocksrepo.CreateStock) (stocksrepo.Stock, error) {
	query := `
		INSERT INTO stocks_stock (stock_code, stock_name, market, sector, current_price, market_cap, per, pbr, created_at, updated_at)
		VALUES (:stock_code, :stock_name, :market, :sector, :current_price, :market_cap, :per, :pbr, :now, :now)`

	result, err := s.db.NamedExecContext(ctx, query, map[string]any{
		"stock_code":    input.StockCode,
		"stock_name":    input.StockName,
		"market":        input.Market,
		"sector":        input.Sector,
		"current_price": input.CurrentPrice,
		"market_cap":    input.MarketCap,
		"per":           input.PER,
		"pbr":           input.PBR,
		"now":           time.Now().UTC(),
	})
	if err != nil {
		return stocksrepo.Stock{}, storeerr.SQLite(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return stocksrepo.Stock{}, storeerr.SQLite(err)
	}
	return s.Get(ctx, id)
}

// Get retrieves a single Stock by ID
func (s *Store) Get(ctx context.Context, id int64) (stocksrepo.Stock, error) {
	return s.getOne(ctx, `SELECT `+columns+` FROM stocks_stock WHERE id = :id`, map[string]any{"id": id})
}

// GetByCode retrieves a single Stock by its ticker code
func (s *Store) GetByCode(ctx context.Context, code string) (stocksrepo.Stock, error) {
	return s.getOne(ctx, `SELECT `+columns+` FROM stocks_stock WHERE stock_code = :stock_code`, map[string]any{"stock_code": code})
}

// Update modifies an existing Stock
func (s *Store) Update(ctx context.Context, id int64, input stocksrepo.UpdateStock) (stocksrepo.Stock, error) {
	fields := []string{"updated_at = :updated_at"}
	data := map[string]any{
		"id":         id,
		"updated_at": time.Now().UTC(),
	}

	set := func(column string, value any) {
		fields = append(fields, column+" = :"+column)
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

	query := fmt.Sprintf(`UPDATE stocks_stock SET %s WHERE id = :id`, strings.Join(fields, ", "))
	result, err := s.db.NamedExecContext(ctx, query, data)
	if err != nil {
		return stocksrepo.Stock{}, storeerr.SQLite(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return stocksrepo.Stock{}, storeerr.SQLite(err)
	}
	if n == 0 {
		return stocksrepo.Stock{}, repositories.ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a Stock. Dependent rows go with it through ON DELETE CASCADE.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.NamedExecContext(ctx, `DELETE FROM stocks_stock WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		return storeerr.SQLite(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return storeerr.SQLite(err)
	}
	if n == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// List retrieves Stock records with filtering, ordering, and cursor pagination
func (s *Store) List(ctx context.Context, filter stocksrepo.StockFilter, orderBy fop.By, page fop.PageStringCursor) ([]stocksrepo.Stock, error) {
	data := map[string]any{}
	var where sqlitedb.Where

	if filter.StockCode != nil {
		where.Add("stock_code = :stock_code")
		data["stock_code"] = *filter.StockCode
	}
	if filter.Market != nil {
		where.Add("market = :market")
		data["market"] = *filter.Market
	}
	if filter.Sector != nil {
		where.Add("sector = :sector")
		data["sector"] = *filter.Sector
	}
	if filter.SearchTerm != nil {
		where.Add("(stock_code LIKE :search_term OR stock_name LIKE :search_term)")
		data["search_term"] = "%" + *filter.SearchTerm + "%"
	}

	pk, orderValue, err := stocksrepo.DecodeCursor(page.Cursor, orderBy)
	if err != nil {
		return nil, err
	}
	if err := sqlitedb.ApplyCursorPagination(&where, data, orderBy.Field, stocksrepo.OrderByPK, orderValue, pk, orderBy.Direction); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`SELECT ` + columns + ` FROM stocks_stock`)
	where.AppendTo(&buf)
	if err := sqlitedb.AddOrderByClause(&buf, orderBy.Field, stocksrepo.OrderByPK, orderBy.Direction); err != nil {
		return nil, err
	}
	sqlitedb.AddLimitClause(page.Limit, data, &buf)

	records := []stocksrepo.Stock{}
	if err := sqlitedb.NamedSelect(ctx, s.db, &records, buf.String(), data); err != nil {
		return nil, storeerr.SQLite(err)
	}
	return records, nil
}

func (s *Store) getOne(ctx context.Context, query string, arg map[string]any) (stocksrepo.Stock, error) {
	var record stocksrepo.Stock
	if err := sqlitedb.NamedGet(ctx, s.db, &record, query, arg); err != nil {
		return stocksrepo.Stock{}, storeerr.SQLite(err)
	}
	return record, nil
}
