package stocksrepobridge

import (
	"context"
	"net/http"

	"github.com/jrazmi/stockdata/bridge/scaffolding/errs"
	"github.com/jrazmi/stockdata/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/infrastructure/web"
)

// bridge provides HTTP handlers for Stock operations.
type bridge struct {
	stockRepository *stocksrepo.Repository
}

func newBridge(stockRepository *stocksrepo.Repository) *bridge {
	return &bridge{
		stockRepository: stockRepository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := qp.Page()
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "page: %s", err)
	}
	orderBy, err := parseOrderBy(qp)
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "order: %s", err)
	}

	records, pageInfo, err := b.stockRepository.List(ctx, parseFilter(qp), orderBy, page)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewPaginatedResponse(toBridgeList(records), pageInfo)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	qpath, err := parsePath(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	stock, err := b.stockRepository.Get(ctx, qpath.StockID)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewRecordResponse(toBridge(stock))
}

func (b *bridge) httpGetByCode(ctx context.Context, r *http.Request) web.Encoder {
	qpath, err := parsePath(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	stock, err := b.stockRepository.GetByCode(ctx, qpath.StockCode)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewRecordResponse(toBridge(stock))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateStockInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	stock, err := b.stockRepository.Create(ctx, input.toRepository())
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return web.NewJSONResponseWithStatus(fopbridge.NewRecordResponse(toBridge(stock)), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	qpath, err := parsePath(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	var input UpdateStockInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	stock, err := b.stockRepository.Update(ctx, qpath.StockID, input.toRepository())
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewRecordResponse(toBridge(stock))
}

// httpDelete removes the stock together with its financials and clusterings.
func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	qpath, err := parsePath(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := b.stockRepository.Delete(ctx, qpath.StockID); err != nil {
		return errs.NewFromRepo(err)
	}
	return nil
}
