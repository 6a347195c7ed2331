package clusteringcriteriarepobridge

import (
	"context"
	"net/http"

	"github.com/jrazmi/stockdata/bridge/scaffolding/errs"
	"github.com/jrazmi/stockdata/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo"
	"github.com/jrazmi/stockdata/infrastructure/web"
)

type bridge struct {
	criterionRepository *clusteringcriteriarepo.Repository
}

func newBridge(criterionRepository *clusteringcriteriarepo.Repository) *bridge {
	return &bridge{
		criterionRepository: criterionRepository,
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

	records, pageInfo, err := b.criterionRepository.List(ctx, parseFilter(qp), orderBy, page)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewPaginatedResponse(toBridgeList(records), pageInfo)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseCriterionID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	c, err := b.criterionRepository.Get(ctx, id)
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewRecordResponse(toBridge(c))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateClusteringCriterionInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	c, err := b.criterionRepository.Create(ctx, clusteringcriteriarepo.CreateClusteringCriterion{Name: input.Name})
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return web.NewJSONResponseWithStatus(fopbridge.NewRecordResponse(toBridge(c)), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseCriterionID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	var input UpdateClusteringCriterionInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	c, err := b.criterionRepository.Update(ctx, id, clusteringcriteriarepo.UpdateClusteringCriterion{Name: input.Name})
	if err != nil {
		return errs.NewFromRepo(err)
	}
	return fopbridge.NewRecordResponse(toBridge(c))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseCriterionID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := b.criterionRepository.Delete(ctx, id); err != nil {
		return errs.NewFromRepo(err)
	}
	return nil
}
