// Package clusteringresultsrepo manages the analysis_clusteringresult table,
// the assignment of stocks to clusters per criterion.
package clusteringresultsrepo

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

// Set of error values for CRUD operations on clustering results.
var (
	ErrResultNotFound   = fmt.Errorf("clustering result: %w", repositories.ErrNotFound)
	ErrClusteringExists = fmt.Errorf("stock already clustered under criterion: %w", repositories.ErrDuplicate)
	ErrUnknownReference = fmt.Errorf("stock or criterion: %w", repositories.ErrInvalidReference)
)

// Storer defines the data storage interface for clustering results.
type Storer interface {
	repositories.Store[ClusteringResult, CreateClusteringResult, UpdateClusteringResult, ClusteringResultFilter]
	Assign(ctx context.Context, input CreateClusteringResult) (ClusteringResult, error)
}

// Repository provides access to clustering result storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new clustering result repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create records a result. A second result for the same stock and
// criterion fails with ErrClusteringExists.
func (r *Repository) Create(ctx context.Context, input CreateClusteringResult) (ClusteringResult, error) {
	if err := validateCreate(input); err != nil {
		return ClusteringResult{}, err
	}

	res, err := r.storer.Create(ctx, input)
	if err != nil {
		return ClusteringResult{}, fmt.Errorf("create clustering result: %w", mapError(err))
	}

	r.log.InfoContext(ctx, "created clustering result", "id", res.ID, "stock_id", res.StockID, "criterion_id", res.CriterionID, "cluster_id", res.ClusterID)
	return res, nil
}

// Assign places the stock in a cluster for the criterion, replacing any
// earlier assignment.
func (r *Repository) Assign(ctx context.Context, stockID, criterionID int64, clusterID int) (ClusteringResult, error) {
	input := CreateClusteringResult{StockID: stockID, CriterionID: criterionID, ClusterID: clusterID}
	if err := validateCreate(input); err != nil {
		return ClusteringResult{}, err
	}

	res, err := r.storer.Assign(ctx, input)
	if err != nil {
		return ClusteringResult{}, fmt.Errorf("assign cluster: %w", mapError(err))
	}

	r.log.InfoContext(ctx, "assigned cluster", "id", res.ID, "stock_id", stockID, "criterion_id", criterionID, "cluster_id", clusterID)
	return res, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (ClusteringResult, error) {
	res, err := r.storer.Get(ctx, id)
	if err != nil {
		return ClusteringResult{}, fmt.Errorf("get clustering result %d: %w", id, mapError(err))
	}
	return res, nil
}

func (r *Repository) List(ctx context.Context, filter ClusteringResultFilter, orderBy fop.By, page fop.PageStringCursor) ([]ClusteringResult, fop.PageInfoStringCursor, error) {
	if !orderFields[orderBy.Field] {
		return nil, fop.PageInfoStringCursor{}, fmt.Errorf("%w: order field %q", repositories.ErrInvalidInput, orderBy.Field)
	}

	records, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fop.PageInfoStringCursor{}, fmt.Errorf("list clustering results: %w", err)
	}

	var next string
	if len(records) > 0 {
		if next, err = EncodeCursor(records[len(records)-1], orderBy); err != nil {
			return nil, fop.PageInfoStringCursor{}, fmt.Errorf("encode cursor: %w", err)
		}
	}
	return records, fop.NewPageInfo(page, len(records), next), nil
}

// ListByStock returns the clusterings of a stock ordered by criterion.
func (r *Repository) ListByStock(ctx context.Context, stockID int64, page fop.PageStringCursor) ([]ClusteringResult, fop.PageInfoStringCursor, error) {
	return r.List(ctx, ClusteringResultFilter{StockID: &stockID}, ByStockOrderBy, page)
}

// Update moves a result to another cluster. An empty update returns the
// stored row.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateClusteringResult) (ClusteringResult, error) {
	if input.ClusterID == nil {
		return r.Get(ctx, id)
	}

	var fe validation.FieldErrors
	checkClusterID(&fe, *input.ClusterID)
	if err := fe.Err(); err != nil {
		return ClusteringResult{}, fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
	}

	res, err := r.storer.Update(ctx, id, input)
	if err != nil {
		return ClusteringResult{}, fmt.Errorf("update clustering result %d: %w", id, mapError(err))
	}
	return res, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete clustering result %d: %w", id, mapError(err))
	}
	r.log.InfoContext(ctx, "deleted clustering result", "id", id)
	return nil
}

func validateCreate(input CreateClusteringResult) error {
	var fe validation.FieldErrors
	fe.Positive("stock_id", input.StockID)
	fe.Positive("criterion_id", input.CriterionID)
	checkClusterID(&fe, input.ClusterID)
	if err := fe.Err(); err != nil {
		return fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
	}
	return nil
}

// checkClusterID keeps cluster_id inside its 32-bit INTEGER column.
func checkClusterID(fe *validation.FieldErrors, clusterID int) {
	fe.Range("cluster_id", int64(clusterID), math.MinInt32, math.MaxInt32)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrResultNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrClusteringExists
	case errors.Is(err, repositories.ErrInvalidReference):
		return ErrUnknownReference
	}
	return err
}
