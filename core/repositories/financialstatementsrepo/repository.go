// Package financialstatementsrepo manages the financials_financialstatement
// table: one row per stock and fiscal year.
package financialstatementsrepo

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/sdk/logger"
	"github.com/jrazmi/stockdata/sdk/validation"
)

// Set of error values for CRUD operations on financial statements.
var (
	ErrStatementNotFound = fmt.Errorf("financial statement: %w", repositories.ErrNotFound)
	ErrStatementExists   = fmt.Errorf("statement for stock and year: %w", repositories.ErrDuplicate)
	ErrUnknownStock      = fmt.Errorf("stock: %w", repositories.ErrInvalidReference)
)

// Accepted fiscal years.
const (
	MinYear = 1900
	MaxYear = 2200
)

// Storer defines the data storage interface for financial statements.
type Storer interface {
	repositories.Store[FinancialStatement, CreateFinancialStatement, UpdateFinancialStatement, FinancialStatementFilter]
	Upsert(ctx context.Context, input CreateFinancialStatement) (FinancialStatement, error)
}

// Repository provides access to financial statement storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new financial statement repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create records a statement. A second statement for the same stock and
// year fails with ErrStatementExists.
func (r *Repository) Create(ctx context.Context, input CreateFinancialStatement) (FinancialStatement, error) {
	if err := validateCreate(input); err != nil {
		return FinancialStatement{}, err
	}

	fs, err := r.storer.Create(ctx, input)
	if err != nil {
		return FinancialStatement{}, fmt.Errorf("create financial statement: %w", mapError(err))
	}

	r.log.InfoContext(ctx, "created financial statement", "id", fs.ID, "stock_id", fs.StockID, "year", fs.Year)
	return fs, nil
}

// Upsert writes the statement for (stock, year), replacing the figures of an
// existing row.
func (r *Repository) Upsert(ctx context.Context, input CreateFinancialStatement) (FinancialStatement, error) {
	if err := validateCreate(input); err != nil {
		return FinancialStatement{}, err
	}

	fs, err := r.storer.Upsert(ctx, input)
	if err != nil {
		return FinancialStatement{}, fmt.Errorf("upsert financial statement: %w", mapError(err))
	}

	r.log.InfoContext(ctx, "upserted financial statement", "id", fs.ID, "stock_id", fs.StockID, "year", fs.Year)
	return fs, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (FinancialStatement, error) {
	fs, err := r.storer.Get(ctx, id)
	if err != nil {
		return FinancialStatement{}, fmt.Errorf("get financial statement %d: %w", id, mapError(err))
	}
	return fs, nil
}

func (r *Repository) List(ctx context.Context, filter FinancialStatementFilter, orderBy fop.By, page fop.PageStringCursor) ([]FinancialStatement, fop.PageInfoStringCursor, error) {
	if !orderFields[orderBy.Field] {
		return nil, fop.PageInfoStringCursor{}, fmt.Errorf("%w: order field %q", repositories.ErrInvalidInput, orderBy.Field)
	}
	if filter.MinYear != nil && filter.MaxYear != nil && *filter.MinYear > *filter.MaxYear {
		return nil, fop.PageInfoStringCursor{}, fmt.Errorf("%w: min_year %d after max_year %d", repositories.ErrInvalidInput, *filter.MinYear, *filter.MaxYear)
	}

	records, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fop.PageInfoStringCursor{}, fmt.Errorf("list financial statements: %w", err)
	}

	var next string
	if len(records) > 0 {
		if next, err = EncodeCursor(records[len(records)-1], orderBy); err != nil {
			return nil, fop.PageInfoStringCursor{}, fmt.Errorf("encode cursor: %w", err)
		}
	}
	return records, fop.NewPageInfo(page, len(records), next), nil
}

// ListByStock returns a stock's statements, newest year first.
func (r *Repository) ListByStock(ctx context.Context, stockID int64, page fop.PageStringCursor) ([]FinancialStatement, fop.PageInfoStringCursor, error) {
	return r.List(ctx, FinancialStatementFilter{StockID: &stockID}, DefaultOrderBy, page)
}

// Update applies the non-nil fields of input to the statement with id.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateFinancialStatement) (FinancialStatement, error) {
	var fe validation.FieldErrors
	if input.Year != nil {
		fe.Range("year", int64(*input.Year), MinYear, MaxYear)
	}
	if input.EPS != nil {
		checkEPS(&fe, *input.EPS)
	}
	if err := fe.Err(); err != nil {
		return FinancialStatement{}, fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
	}

	fs, err := r.storer.Update(ctx, id, input)
	if err != nil {
		return FinancialStatement{}, fmt.Errorf("update financial statement %d: %w", id, mapError(err))
	}
	return fs, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete financial statement %d: %w", id, mapError(err))
	}
	r.log.InfoContext(ctx, "deleted financial statement", "id", id)
	return nil
}

func validateCreate(input CreateFinancialStatement) error {
	var fe validation.FieldErrors
	fe.Positive("stock_id", input.StockID)
	fe.Range("year", int64(input.Year), MinYear, MaxYear)
	checkEPS(&fe, input.EPS)
	if err := fe.Err(); err != nil {
		return fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
	}
	return nil
}

// checkEPS rejects values a double precision column cannot hold.
func checkEPS(fe *validation.FieldErrors, eps float64) {
	if math.IsNaN(eps) || math.IsInf(eps, 0) {
		fe.Add("eps", "must be a finite number")
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrStatementNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrStatementExists
	case errors.Is(err, repositories.ErrInvalidReference):
		return ErrUnknownStock
	}
	return err
}
