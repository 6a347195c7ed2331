// Package clusteringcriteriasqlitestore implements
// clusteringcriteriarepo.Storer on SQLite.
package clusteringcriteriasqlitestore

import (
	"bytes"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo"
	"github.com/jrazmi/stockdata/core/repositories/storeerr"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb"
	"github.com/jrazmi/stockdata/sdk/logger"
)

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

// Create inserts a new ClusteringCriterion
func (s *Store) Create(ctx context.Context, input clusteringcriteriarepo.CreateClusteringCriterion) (clusteringcriteriarepo.ClusteringCriterion, error) {
	query := `INSERT INTO analysis_clusteringcriterion (name) VALUES (:name) RETURNING id, name`
	return s.getOne(ctx, query, map[string]any{"name": input.Name})
}

// Get retrieves a single ClusteringCriterion by ID
func (s *Store) Get(ctx context.Context, id int64) (clusteringcriteriarepo.ClusteringCriterion, error) {
	query := `SELECT id, name FROM analysis_clusteringcriterion WHERE id = :id`
	return s.getOne(ctx, query, map[string]any{"id": id})
}

// Update modifies an existing ClusteringCriterion
func (s *Store) Update(ctx context.Context, id int64, input clusteringcriteriarepo.UpdateClusteringCriterion) (clusteringcriteriarepo.ClusteringCriterion, error) {
	if input.Name == nil {
		return s.Get(ctx, id)
	}
	query := `UPDATE analysis_clusteringcriterion SET name = :name WHERE id = :id RETURNING id, name`
	return s.getOne(ctx, query, map[string]any{"id": id, "name": *input.Name})
}

// Delete removes a ClusteringCriterion together with its results.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.NamedExecContext(ctx, `DELETE FROM analysis_clusteringcriterion WHERE id = :id`, map[string]any{"id": id})
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

// List retrieves ClusteringCriterion records with filtering, ordering, and cursor pagination
func (s *Store) List(ctx context.Context, filter clusteringcriteriarepo.ClusteringCriterionFilter, orderBy fop.By, page fop.PageStringCursor) ([]clusteringcriteriarepo.ClusteringCriterion, error) {
	data := map[string]any{}
	var where sqlitedb.Where

	if filter.Name != nil {
		where.Add("name = :name")
		data["name"] = *filter.Name
	}
	if filter.SearchTerm != nil {
		where.Add("name LIKE :search_term")
		data["search_term"] = "%" + *filter.SearchTerm + "%"
	}

	pk, orderValue, err := clusteringcriteriarepo.DecodeCursor(page.Cursor, orderBy)
	if err != nil {
		return nil, err
	}
	if err := sqlitedb.ApplyCursorPagination(&where, data, orderBy.Field, clusteringcriteriarepo.OrderByPK, orderValue, pk, orderBy.Direction); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`SELECT id, name FROM analysis_clusteringcriterion`)
	where.AppendTo(&buf)
	if err := sqlitedb.AddOrderByClause(&buf, orderBy.Field, clusteringcriteriarepo.OrderByPK, orderBy.Direction); err != nil {
		return nil, err
	}
	sqlitedb.AddLimitClause(page.Limit, data, &buf)

	records := []clusteringcriteriarepo.ClusteringCriterion{}
	if err := sqlitedb.NamedSelect(ctx, s.db, &records, buf.String(), data); err != nil {
		return nil, storeerr.SQLite(err)
	}
	return records, nil
}

func (s *Store) getOne(ctx context.Context, query string, arg map[string]any) (clusteringcriteriarepo.ClusteringCriterion, error) {
	var record clusteringcriteriarepo.ClusteringCriterion
	if err := sqlitedb.NamedGet(ctx, s.db, &record, query, arg); err != nil {
		return clusteringcriteriarepo.ClusteringCriterion{}, storeerr.SQLite(err)
	}
	return record, nil
}
