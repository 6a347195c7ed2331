// Package clusteringresultspgxstore implements clusteringresultsrepo.Storer
// on PostgreSQL.
package clusteringresultspgxstore

import (
	"bytes"
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo"
	"github.com/jrazmi/stockdata/core/repositories/storeerr"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/postgresdb"
	"github.com/jrazmi/stockdata/sdk/logger"
)

const columns = `id, cluster_id, criterion_id, stock_id`

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

// Create inserts a new ClusteringResult
func (s *Store) Create(ctx context.Context, input clusteringresultsrepo.CreateClusteringResult) (clusteringresultsrepo.ClusteringResult, error) {
	query := `
		INSERT INTO analysis_clusteringresult (cluster_id, criterion_id, stock_id)
		VALUES (@cluster_id, @criterion_id, @stock_id)
		RETURNING ` + columns
	return s.queryOne(ctx, query, createArgs(input))
}

// Assign inserts or re-clusters the result for the (stock, criterion) pair.
func (s *Store) Assign(ctx context.Context, input clusteringresultsrepo.CreateClusteringResult) (clusteringresultsrepo.ClusteringResult, error) {
	query := `
		INSERT INTO analysis_clusteringresult (cluster_id, criterion_id, stock_id)
		VALUES (@cluster_id, @criterion_id, @stock_id)
		ON CONFLICT (stock_id, criterion_id) DO UPDATE SET cluster_id = EXCLUDED.cluster_id
		RETURNING ` + columns
	return s.queryOne(ctx, query, createArgs(input))
}

// Get retrieves a single ClusteringResult by ID
func (s *Store) Get(ctx context.Context, id int64) (clusteringresultsrepo.ClusteringResult, error) {
	return s.queryOne(ctx, `SELECT `+columns+` FROM analysis_clusteringresult WHERE id = @id`, pgx.NamedArgs{"id": id})
}

// Update modifies an existing ClusteringResult
func (s *Store) Update(ctx context.Context, id int64, input clusteringresultsrepo.UpdateClusteringResult) (clusteringresultsrepo.ClusteringResult, error) {
	if input.ClusterID == nil {
		return s.Get(ctx, id)
	}
	query := `UPDATE analysis_clusteringresult SET cluster_id = @cluster_id WHERE id = @id RETURNING ` + columns
	return s.queryOne(ctx, query, pgx.NamedArgs{"id": id, "cluster_id": *input.ClusterID})
}

// Delete removes a ClusteringResult
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM analysis_clusteringresult WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return storeerr.Postgres(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// List retrieves ClusteringResult records with filtering, ordering, and cursor pagination
func (s *Store) List(ctx context.Context, filter clusteringresultsrepo.ClusteringResultFilter, orderBy fop.By, page fop.PageStringCursor) ([]clusteringresultsrepo.ClusteringResult, error) {
	data := pgx.NamedArgs{}
	var where postgresdb.Where

	if filter.StockID != nil {
		where.Add("stock_id = @stock_id")
		data["stock_id"] = *filter.StockID
	}
	if filter.CriterionID != nil {
		where.Add("criterion_id = @criterion_id")
		data["criterion_id"] = *filter.CriterionID
	}
	if filter.ClusterID != nil {
		where.Add("cluster_id = @cluster_id")
		data["cluster_id"] = *filter.ClusterID
	}

	pk, orderValue, err := clusteringresultsrepo.DecodeCursor(page.Cursor, orderBy)
	if err != nil {
		return nil, err
	}
	if err := postgresdb.ApplyCursorPagination(&where, data, orderBy.Field, clusteringresultsrepo.OrderByPK, orderValue, pk, orderBy.Direction, false); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`SELECT ` + columns + ` FROM analysis_clusteringresult`)
	where.AppendTo(&buf)
	if err := postgresdb.AddOrderByClause(&buf, orderBy.Field, clusteringresultsrepo.OrderByPK, orderBy.Direction, false); err != nil {
		return nil, err
	}
	postgresdb.AddLimitClause(page.Limit, data, &buf)

	rows, err := s.pool.Query(ctx, buf.String(), data)
	if err != nil {
		return nil, storeerr.Postgres(err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[clusteringresultsrepo.ClusteringResult])
	if err != nil {
		return nil, storeerr.Postgres(err)
	}
	return records, nil
}

func (s *Store) queryOne(ctx context.Context, query string, args pgx.NamedArgs) (clusteringresultsrepo.ClusteringResult, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return clusteringresultsrepo.ClusteringResult{}, storeerr.Postgres(err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[clusteringresultsrepo.ClusteringResult])
	if err != nil {
		return clusteringresultsrepo.ClusteringResult{}, storeerr.Postgres(err)
	}
	return record, nil
}

func createArgs(input clusteringresultsrepo.CreateClusteringResult) pgx.NamedArgs {
	return pgx.NamedArgs{
		"cluster_id":   input.ClusterID,
		"criterion_id": input.CriterionID,
		"stock_id":     input.StockID,
	}
}
