package clusteringresultsrepobridge

import (
	"context"
	"net/http"

	"github.com/jrazmi/stockdata/bridge/scaffolding/errs"
	"github.com/jrazmi/stockdata/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/infrastructure/web"
)

type bridge struct {
	resultRepository *clusteringresultsrepo.Repository
	stockRepository  *stocksrepo.Repository
}

func newBridge(resultRepository *clusteringresultsrepo.Repository, stockRepository *stocksrepo.Repository) *bridge {
	return &bridge{
		resultRepository: resultRepository,
		stockRepository:  stockRepository,
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

	records, pageInfo, err := b.resultRepository.List(ctx, filter, orderBy, page)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewPaginatedResponse(toBridgeList(records), pageInfo)
}

// httpListByStock serves a stock's clusterings. An unknown stock is a 404
// rather than an empty page.
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

	records, pageInfo, err := b.resultRepository.ListByStock(ctx, stockID, page)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewPaginatedResponse(toBridgeList(records), pageInfo)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseResultID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	res, err := b.resultRepository.Get(ctx, id)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewRecordResponse(toBridge(res))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateClusteringResultInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	res, err := b.resultRepository.Create(ctx, input.toRepository())
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return web.NewJSONResponseWithStatus(fopbridge.NewRecordResponse(toBridge(res)), http.StatusCreated)
}

// httpAssign creates or replaces the result for the body's stock and criterion.
func (b *bridge) httpAssign(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateClusteringResultInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	res, err := b.resultRepository.Assign(ctx, input.StockID, input.CriterionID, input.ClusterID)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewRecordResponse(toBridge(res))
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseResultID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	var input UpdateClusteringResultInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	res, err := b.resultRepository.Update(ctx, id, clusteringresultsrepo.UpdateClusteringResult{ClusterID: input.ClusterID})
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewRecordResponse(toBridge(res))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseResultID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := b.resultRepository.Delete(ctx, id); err != nil {
		return errs.NewFromRepo(err)
	}
	return nil
}
