package financialstatementsrepobridge

import (
	"context"
	"net/http"

	"github.com/jrazmi/stockdata/bridge/scaffolding/errs"
	"github.com/jrazmi/stockdata/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/stockdata/core/repositories/financialstatementsrepo"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/infrastructure/web"
)

type bridge struct {
	statementRepository *financialstatementsrepo.Repository
	stockRepository     *stocksrepo.Repository
}

func newBridge(statementRepository *financialstatementsrepo.Repository, stockRepository *stocksrepo.Repository) *bridge {
	return &bridge{
		statementRepository: statementRepository,
		stockRepository:     stockRepository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := qp.Page()
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "page: %s", err)
	}
	filter, err := parseFilter(qp)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	orderBy, err := parseOrderBy(qp)
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "order: %s", err)
	}

	records, pageInfo, err := b.statementRepository.List(ctx, filter, orderBy, page)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewPaginatedResponse(toBridgeList(records), pageInfo)
}

// httpListByStock serves a stock's statements, newest year first.
func (b *bridge) httpListByStock(ctx context.Context, r *http.Request) web.Encoder {
	stockID, err := parseStockID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	page, err := fopbridge.ParsePageParams(r).Page()
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "page: %s", err)
	}

	if _, err := b.stockRepository.Get(ctx, stockID); err != nil {
		return errs.NewFromRepo(err)
	}

	records, pageInfo, err := b.statementRepository.ListByStock(ctx, stockID, page)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewPaginatedResponse(toBridgeList(records), pageInfo)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseStatementID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	fs, err := b.statementRepository.Get(ctx, id)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewRecordResponse(toBridge(fs))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateFinancialStatementInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	fs, err := b.statementRepository.Create(ctx, input.toRepository())
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return web.NewJSONResponseWithStatus(fopbridge.NewRecordResponse(toBridge(fs)), http.StatusCreated)
}

// httpUpsert writes the statement for the body's stock and year.
func (b *bridge) httpUpsert(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateFinancialStatementInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	fs, err := b.statementRepository.Upsert(ctx, input.toRepository())
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewRecordResponse(toBridge(fs))
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseStatementID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	var input UpdateFinancialStatementInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	fs, err := b.statementRepository.Update(ctx, id, input.toRepository())
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewRecordResponse(toBridge(fs))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseStatementID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := b.statementRepository.Delete(ctx, id); err != nil {
		return errs.NewFromRepo(err)
	}
	return nil
}
