// Package clusteringcriteriapgxstore implements clusteringcriteriarepo.Storer
// on PostgreSQL.
package clusteringcriteriapgxstore

import (
	"bytes"
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo"
	"github.com/jrazmi/stockdata/core/repositories/storeerr"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/postgresdb"
	"github.com/jrazmi/stockdata/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// Create inserts a new ClusteringCriterion
func (s *Store) Create(ctx context.Context, input clusteringcriteriarepo.CreateClusteringCriterion) (clusteringcriteriarepo.ClusteringCriterion, error) {
	query := `INSERT INTO analysis_clusteringcriterion (name) VALUES (@name) RETURNING id, name`
	return s.queryOne(ctx, query, pgx.NamedArgs{"name": input.Name})
}

// Get retrieves a single ClusteringCriterion by ID
func (s *Store) Get(ctx context.Context, id int64) (clusteringcriteriarepo.ClusteringCriterion, error) {
	query := `SELECT id, name FROM analysis_clusteringcriterion WHERE id = @id`
	return s.queryOne(ctx, query, pgx.NamedArgs{"id": id})
}

// Update modifies an existing ClusteringCriterion
func (s *Store) Update(ctx context.Context, id int64, input clusteringcriteriarepo.UpdateClusteringCriterion) (clusteringcriteriarepo.ClusteringCriterion, error) {
	if input.Name == nil {
		return s.Get(ctx, id)
	}
	query := `UPDATE analysis_clusteringcriterion SET name = @name WHERE id = @id RETURNING id, name`
	return s.queryOne(ctx, query, pgx.NamedArgs{"id": id, "name": *input.Name})
}

// Delete removes a ClusteringCriterion together with its results.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM analysis_clusteringcriterion WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return storeerr.Postgres(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// List retrieves ClusteringCriterion records with filtering, ordering, and cursor pagination
func (s *Store) List(ctx context.Context, filter clusteringcriteriarepo.ClusteringCriterionFilter, orderBy fop.By, page fop.PageStringCursor) ([]clusteringcriteriarepo.ClusteringCriterion, error) {
	data := pgx.NamedArgs{}
	var where postgresdb.Where

	if filter.Name != nil {
		where.Add("name = @name")
		data["name"] = *filter.Name
	}
	if filter.SearchTerm != nil {
		where.Add("name ILIKE @search_term")
		data["search_term"] = "%" + *filter.SearchTerm + "%"
	}

	pk, orderValue, err := clusteringcriteriarepo.DecodeCursor(page.Cursor, orderBy)
	if err != nil {
		return nil, err
	}
	if err := postgresdb.ApplyCursorPagination(&where, data, orderBy.Field, clusteringcriteriarepo.OrderByPK, orderValue, pk, orderBy.Direction, false); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`SELECT id, name FROM analysis_clusteringcriterion`)
	where.AppendTo(&buf)
	if err := postgresdb.AddOrderByClause(&buf, orderBy.Field, clusteringcriteriarepo.OrderByPK, orderBy.Direction, false); err != nil {
		return nil, err
	}
	postgresdb.AddLimitClause(page.Limit, data, &buf)

	rows, err := s.pool.Query(ctx, buf.String(), data)
	if err != nil {
		return nil, storeerr.Postgres(err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[clusteringcriteriarepo.ClusteringCriterion])
	if err != nil {
		return nil, storeerr.Postgres(err)
	}
	return records, nil
}

func (s *Store) queryOne(ctx context.Context, query string, args pgx.NamedArgs) (clusteringcriteriarepo.ClusteringCriterion, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return clusteringcriteriarepo.ClusteringCriterion{}, storeerr.Postgres(err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[clusteringcriteriarepo.ClusteringCriterion])
	if err != nil {
		return clusteringcriteriarepo.ClusteringCriterion{}, storeerr.Postgres(err)
	}
	return record, nil
}
