package financialstatementsrepo_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/financialstatementsrepo"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/sdk/logger"
	"github.com/jrazmi/stockdata/sdk/validation"
)

type stubStorer struct {
	calls  int
	err    error
	filter financialstatementsrepo.FinancialStatementFilter
	order  fop.By
	rows   []financialstatementsrepo.FinancialStatement
}

func (s *stubStorer) Create(ctx context.Context, in financialstatementsrepo.CreateFinancialStatement) (financialstatementsrepo.FinancialStatement, error) {
	s.calls++
	if s.err != nil {
		return financialstatementsrepo.FinancialStatement{}, s.err
	}
	return financialstatementsrepo.FinancialStatement{ID: 1, StockID: in.StockID, Year: in.Year, EPS: in.EPS}, nil
}

func (s *stubStorer) Upsert(ctx context.Context, in financialstatementsrepo.CreateFinancialStatement) (financialstatementsrepo.FinancialStatement, error) {
	return s.Create(ctx, in)
}

func (s *stubStorer) Get(ctx context.Context, id int64) (financialstatementsrepo.FinancialStatement, error) {
	return financialstatementsrepo.FinancialStatement{ID: id}, s.err
}

func (s *stubStorer) List(ctx context.Context, filter financialstatementsrepo.FinancialStatementFilter, orderBy fop.By, page fop.PageStringCursor) ([]financialstatementsrepo.FinancialStatement, error) {
	s.calls++
	s.filter, s.order = filter, orderBy
	return s.rows, s.err
}

func (s *stubStorer) Update(ctx context.Context, id int64, in financialstatementsrepo.UpdateFinancialStatement) (financialstatementsrepo.FinancialStatement, error) {
	s.calls++
	return financialstatementsrepo.FinancialStatement{ID: id}, s.err
}

func (s *stubStorer) Delete(ctx context.Context, id int64) error {
	return s.err
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		in   financialstatementsrepo.CreateFinancialStatement
		ok   bool
	}{
		{"valid", financialstatementsrepo.CreateFinancialStatement{StockID: 1, Year: 2023, EPS: 0.5}, true},
		{"lowest year", financialstatementsrepo.CreateFinancialStatement{StockID: 1, Year: financialstatementsrepo.MinYear}, true},
		{"year too old", financialstatementsrepo.CreateFinancialStatement{StockID: 1, Year: 1899}, false},
		{"year too far", financialstatementsrepo.CreateFinancialStatement{StockID: 1, Year: 2201}, false},
		{"missing stock", financialstatementsrepo.CreateFinancialStatement{Year: 2023}, false},
		{"nan eps", financialstatementsrepo.CreateFinancialStatement{StockID: 1, Year: 2023, EPS: math.NaN()}, false},
		{"infinite eps", financialstatementsrepo.CreateFinancialStatement{StockID: 1, Year: 2023, EPS: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubStorer{}
			repo := financialstatementsrepo.NewRepository(logger.NewDiscard(), stub)

			_, err := repo.Create(context.Background(), tt.in)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, repositories.ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
			var fe validation.FieldErrors
			if !errors.As(err, &fe) || len(fe) == 0 {
				t.Errorf("error carries no field errors: %v", err)
			}
			if stub.calls != 0 {
				t.Error("store called with invalid input")
			}
		})
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		want     error
	}{
		{"duplicate year", repositories.ErrDuplicate, financialstatementsrepo.ErrStatementExists},
		{"unknown stock", repositories.ErrInvalidReference, financialstatementsrepo.ErrUnknownStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := financialstatementsrepo.NewRepository(logger.NewDiscard(), &stubStorer{err: tt.storeErr})
			_, err := repo.Create(context.Background(), financialstatementsrepo.CreateFinancialStatement{StockID: 1, Year: 2023})
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	repo := financialstatementsrepo.NewRepository(logger.NewDiscard(), &stubStorer{err: repositories.ErrNotFound})
	if _, err := repo.Get(context.Background(), 3); !errors.Is(err, financialstatementsrepo.ErrStatementNotFound) {
		t.Errorf("get: got %v", err)
	}
}

func TestUpdateRejectsYearOutOfRange(t *testing.T) {
	stub := &stubStorer{}
	repo := financialstatementsrepo.NewRepository(logger.NewDiscard(), stub)

	_, err := repo.Update(context.Background(), 1, financialstatementsrepo.UpdateFinancialStatement{Year: validation.IntPtr(3000)})
	if !errors.Is(err, repositories.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if stub.calls != 0 {
		t.Error("store called with invalid input")
	}
}

func TestListByStockUsesYearDesc(t *testing.T) {
	stub := &stubStorer{rows: []financialstatementsrepo.FinancialStatement{{ID: 5, Year: 2024}, {ID: 4, Year: 2023}}}
	repo := financialstatementsrepo.NewRepository(logger.NewDiscard(), stub)

	_, info, err := repo.ListByStock(context.Background(), 9, fop.PageStringCursor{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if stub.order.Field != financialstatementsrepo.OrderByYear || stub.order.Direction != fop.DESC {
		t.Errorf("order = %+v, want year DESC", stub.order)
	}
	if stub.filter.StockID == nil || *stub.filter.StockID != 9 {
		t.Errorf("filter = %+v", stub.filter)
	}

	pk, value, err := financialstatementsrepo.DecodeCursor(info.NextCursor, financialstatementsrepo.DefaultOrderBy)
	if err != nil {
		t.Fatalf("decode cursor: %v", err)
	}
	if *pk != 4 || (*value).(int64) != 2023 {
		t.Errorf("cursor = (%d, %v), want (4, 2023)", *pk, *value)
	}
}

func TestListRejectsInvertedYearRange(t *testing.T) {
	stub := &stubStorer{}
	repo := financialstatementsrepo.NewRepository(logger.NewDiscard(), stub)

	filter := financialstatementsrepo.FinancialStatementFilter{MinYear: validation.IntPtr(2024), MaxYear: validation.IntPtr(2020)}
	if _, _, err := repo.List(context.Background(), filter, financialstatementsrepo.DefaultOrderBy, fop.PageStringCursor{Limit: 5}); !errors.Is(err, repositories.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if stub.calls != 0 {
		t.Error("store called with invalid filter")
	}
}
