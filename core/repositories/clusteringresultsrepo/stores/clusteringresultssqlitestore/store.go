// Package clusteringresultssqlitestore implements clusteringresultsrepo.Storer
// on SQLite.
package clusteringresultssqlitestore

import (
	"bytes"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo"
	"github.com/jrazmi/stockdata/core/repositories/storeerr"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb"
	"github.com/jrazmi/stockdata/sdk/logger"
)

const columns = `id, cluster_id, criterion_id, stock_id`

type Store struct {
	log *logger.Logger
	db  *sqlx.DB
}

func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// Create inserts a new ClusteringResult
func (s *Store) Create(ctx context.Context, input clusteringresultsrepo.CreateClusteringResult) (clusteringresultsrepo.ClusteringResult, error) {
	query := `
		INSERT INTO analysis_clusteringresult (cluster_id, criterion_id, stock_id)
		VALUES (:cluster_id, :criterion_id, :stock_id)
		RETURNING ` + columns
	return s.getOne(ctx, query, createArgs(input))
}

// Assign inserts or re-clusters the result for the (stock, criterion) pair.
func (s *Store) Assign(ctx context.Context, input clusteringresultsrepo.CreateClusteringResult) (clusteringresultsrepo.ClusteringResult, error) {
	query := `
		INSERT INTO analysis_clusteringresult (cluster_id, criterion_id, stock_id)
		VALUES (:cluster_id, :criterion_id, :stock_id)
		ON CONFLICT (stock_id, criterion_id) DO UPDATE SET cluster_id = excluded.cluster_id
		RETURNING ` + columns
	return s.getOne(ctx, query, createArgs(input))
}

// Get retrieves a single ClusteringResult by ID
func (s *Store) Get(ctx context.Context, id int64) (clusteringresultsrepo.ClusteringResult, error) {
	return s.getOne(ctx, `SELECT `+columns+` FROM analysis_clusteringresult WHERE id = :id`, map[string]any{"id": id})
}

// Update modifies an existing ClusteringResult
func (s *Store) Update(ctx context.Context, id int64, input clusteringresultsrepo.UpdateClusteringResult) (clusteringresultsrepo.ClusteringResult, error) {
	if input.ClusterID == nil {
		return s.Get(ctx, id)
	}
	query := `UPDATE analysis_clusteringresult SET cluster_id = :cluster_id WHERE id = :id RETURNING ` + columns
	return s.getOne(ctx, query, map[string]any{"id": id, "cluster_id": *input.ClusterID})
}

// Delete removes a ClusteringResult
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.NamedExecContext(ctx, `DELETE FROM analysis_clusteringresult WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		return storeerr.SQLite(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return storeerr.SQLite(err)
	}
	if n == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// List retrieves ClusteringResult records with filtering, ordering, and cursor pagination
func (s *Store) List(ctx context.Context, filter clusteringresultsrepo.ClusteringResultFilter, orderBy fop.By, page fop.PageStringCursor) ([]clusteringresultsrepo.ClusteringResult, error) {
	data := map[string]any{}
	var where sqlitedb.Where

	if filter.StockID != nil {
		where.Add("stock_id = :stock_id")
		data["stock_id"] = *filter.StockID
	}
	if filter.CriterionID != nil {
		where.Add("criterion_id = :criterion_id")
		data["criterion_id"] = *filter.CriterionID
	}
	if filter.ClusterID != nil {
		where.Add("cluster_id = :cluster_id")
		data["cluster_id"] = *filter.ClusterID
	}

	pk, orderValue, err := clusteringresultsrepo.DecodeCursor(page.Cursor, orderBy)
	if err != nil {
		return nil, err
	}
	if err := sqlitedb.ApplyCursorPagination(&where, data, orderBy.Field, clusteringresultsrepo.OrderByPK, orderValue, pk, orderBy.Direction); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`SELECT ` + columns + ` FROM analysis_clusteringresult`)
	where.AppendTo(&buf)
	if err := sqlitedb.AddOrderByClause(&buf, orderBy.Field, clusteringresultsrepo.OrderByPK, orderBy.Direction); err != nil {
		return nil, err
	}
	sqlitedb.AddLimitClause(page.Limit, data, &buf)

	records := []clusteringresultsrepo.ClusteringResult{}
	if err := sqlitedb.NamedSelect(ctx, s.db, &records, buf.String(), data); err != nil {
		return nil, storeerr.SQLite(err)
	}
	return records, nil
}

func (s *Store) getOne(ctx context.Context, query string, arg map[string]any) (clusteringresultsrepo.ClusteringResult, error) {
	var record clusteringresultsrepo.ClusteringResult
	if err := sqlitedb.NamedGet(ctx, s.db, &record, query, arg); err != nil {
		return clusteringresultsrepo.ClusteringResult{}, storeerr.SQLite(err)
	}
	return record, nil
}

func createArgs(input clusteringresultsrepo.CreateClusteringResult) map[string]any {
	return map[string]any{
		"cluster_id":   input.ClusterID,
		"criterion_id": input.CriterionID,
		"stock_id":     input.StockID,
	}
}
