// Package clusteringcriteriarepo manages the analysis_clusteringcriterion table.
package clusteringcriteriarepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/sdk/logger"
	"github.com/jrazmi/stockdata/sdk/validation"
)

// ErrCriterionNotFound is returned when no criterion has the requested id.
var ErrCriterionNotFound = fmt.Errorf("clustering criterion: %w", repositories.ErrNotFound)

// MaxNameLength is the width of the name column.
const MaxNameLength = 100

// Storer defines the data storage interface for clustering criteria.
type Storer interface {
	repositories.Store[ClusteringCriterion, CreateClusteringCriterion, UpdateClusteringCriterion, ClusteringCriterionFilter]
}

// Repository provides access to clustering criterion storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new clustering criterion repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

func (r *Repository) Create(ctx context.Context, input CreateClusteringCriterion) (ClusteringCriterion, error) {
	if err := validateName(input.Name); err != nil {
		return ClusteringCriterion{}, err
	}

	c, err := r.storer.Create(ctx, input)
	if err != nil {
		return ClusteringCriterion{}, fmt.Errorf("create clustering criterion: %w", mapError(err))
	}

	r.log.InfoContext(ctx, "created clustering criterion", "id", c.ID, "name", c.Name)
	return c, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (ClusteringCriterion, error) {
	c, err := r.storer.Get(ctx, id)
	if err != nil {
		return ClusteringCriterion{}, fmt.Errorf("get clustering criterion %d: %w", id, mapError(err))
	}
	return c, nil
}

func (r *Repository) List(ctx context.Context, filter ClusteringCriterionFilter, orderBy fop.By, page fop.PageStringCursor) ([]ClusteringCriterion, fop.PageInfoStringCursor, error) {
	if orderBy.Field != OrderByPK && orderBy.Field != OrderByName {
		return nil, fop.PageInfoStringCursor{}, fmt.Errorf("%w: order field %q", repositories.ErrInvalidInput, orderBy.Field)
	}

	records, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fop.PageInfoStringCursor{}, fmt.Errorf("list clustering criteria: %w", err)
	}

	var next string
	if len(records) > 0 {
		if next, err = EncodeCursor(records[len(records)-1], orderBy); err != nil {
			return nil, fop.PageInfoStringCursor{}, fmt.Errorf("encode cursor: %w", err)
		}
	}
	return records, fop.NewPageInfo(page, len(records), next), nil
}

// Update renames a criterion. An empty update returns the stored row.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateClusteringCriterion) (ClusteringCriterion, error) {
	if input.Name == nil {
		return r.Get(ctx, id)
	}
	if err := validateName(*input.Name); err != nil {
		return ClusteringCriterion{}, err
	}

	c, err := r.storer.Update(ctx, id, input)
	if err != nil {
		return ClusteringCriterion{}, fmt.Errorf("update clustering criterion %d: %w", id, mapError(err))
	}
	return c, nil
}

// Delete removes a criterion and, through the cascade, every clustering
// result recorded under it.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete clustering criterion %d: %w", id, mapError(err))
	}
	r.log.InfoContext(ctx, "deleted clustering criterion", "id", id)
	return nil
}

func validateName(name string) error {
	var fe validation.FieldErrors
	fe.Required("name", name)
	fe.MaxLength("name", name, MaxNameLength)
	if err := fe.Err(); err != nil {
		return fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCriterionNotFound
	}
	return err
}
