// Package stocksrepo manages the stocks_stock table.
package stocksrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/sdk/logger"
	"github.com/jrazmi/stockdata/sdk/validation"
)

// Set of error values for CRUD operations on stocks.
var (
	ErrStockNotFound   = fmt.Errorf("stock: %w", repositories.ErrNotFound)
	ErrStockCodeExists = fmt.Errorf("stock code: %w", repositories.ErrDuplicate)
)

// Column limits.
const (
	MaxStockCodeLength = 20
	MaxStockNameLength = 100
	MaxMarketLength    = 20
	MaxSectorLength    = 100
)

// Storer defines the data storage interface for stocks.
type Storer interface {
	repositories.Store[Stock, CreateStock, UpdateStock, StockFilter]
	GetByCode(ctx context.Context, code string) (Stock, error)
}

// Repository provides access to stock storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new stock repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create inserts a stock. The stock code must be unique.
func (r *Repository) Create(ctx context.Context, input CreateStock) (Stock, error) {
	var fe validation.FieldErrors
	fe.Required("stock_code", input.StockCode)
	fe.Required("stock_name", input.StockName)
	checkLengths(&fe, &input.StockCode, &input.StockName, &input.Market, &input.Sector)
	if err := fe.Err(); err != nil {
		return Stock{}, fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
	}

	stock, err := r.storer.Create(ctx, input)
	if err != nil {
		return Stock{}, fmt.Errorf("create stock: %w", mapError(err))
	}

	r.log.InfoContext(ctx, "created stock", "id", stock.ID, "stock_code", stock.StockCode)
	return stock, nil
}

// Get returns the stock with id.
func (r *Repository) Get(ctx context.Context, id int64) (Stock, error) {
	stock, err := r.storer.Get(ctx, id)
	if err != nil {
		return Stock{}, fmt.Errorf("get stock %d: %w", id, mapError(err))
	}
	return stock, nil
}

// GetByCode returns the stock with the given ticker code.
func (r *Repository) GetByCode(ctx context.Context, code string) (Stock, error) {
	stock, err := r.storer.GetByCode(ctx, code)
	if err != nil {
		return Stock{}, fmt.Errorf("get stock %q: %w", code, mapError(err))
	}
	return stock, nil
}

// List returns one page of stocks.
func (r *Repository) List(ctx context.Context, filter StockFilter, orderBy fop.By, page fop.PageStringCursor) ([]Stock, fop.PageInfoStringCursor, error) {
	if !orderFields[orderBy.Field] {
		return nil, fop.PageInfoStringCursor{}, fmt.Errorf("%w: order field %q", repositories.ErrInvalidInput, orderBy.Field)
	}

	records, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fop.PageInfoStringCursor{}, fmt.Errorf("list stocks: %w", err)
	}

	var next string
	if len(records) > 0 {
		if next, err = EncodeCursor(records[len(records)-1], orderBy); err != nil {
			return nil, fop.PageInfoStringCursor{}, fmt.Errorf("encode cursor: %w", err)
		}
	}
	return records, fop.NewPageInfo(page, len(records), next), nil
}

// Update applies the non-nil fields of input to the stock with id.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateStock) (Stock, error) {
	var fe validation.FieldErrors
	if input.StockCode != nil {
		fe.Required("stock_code", *input.StockCode)
	}
	if input.StockName != nil {
		fe.Required("stock_name", *input.StockName)
	}
	checkLengths(&fe, input.StockCode, input.StockName, input.Market, input.Sector)
	if err := fe.Err(); err != nil {
		return Stock{}, fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
	}

	stock, err := r.storer.Update(ctx, id, input)
	if err != nil {
		return Stock{}, fmt.Errorf("update stock %d: %w", id, mapError(err))
	}
	return stock, nil
}

// Delete removes the stock with id. Its financial statements and clustering
// results are removed by the database cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete stock %d: %w", id, mapError(err))
	}
	r.log.InfoContext(ctx, "deleted stock", "id", id)
	return nil
}

func checkLengths(fe *validation.FieldErrors, code, name, market, sector *string) {
	if code != nil {
		fe.MaxLength("stock_code", *code, MaxStockCodeLength)
	}
	if name != nil {
		fe.MaxLength("stock_name", *name, MaxStockNameLength)
	}
	if market != nil {
		fe.MaxLength("market", *market, MaxMarketLength)
	}
	if sector != nil {
		fe.MaxLength("sector", *sector, MaxSectorLength)
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrStockNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrStockCodeExists
	}
	return err
}
