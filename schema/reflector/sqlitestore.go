package reflector

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// SQLiteStore reads the SQLite catalog through the pragma table functions.
type SQLiteStore struct {
	db     *sqlx.DB
	dbName string
}

// NewSQLiteStore creates a store over db. dbName is only reported back.
func NewSQLiteStore(db *sqlx.DB, dbName string) *SQLiteStore {
	return &SQLiteStore{
		db:     db,
		dbName: dbName,
	}
}

func (s *SQLiteStore) GetDatabaseName() string {
	return s.dbName
}

func (s *SQLiteStore) GetSourceType() string {
	return "sqlite"
}

func (s *SQLiteStore) DefaultSchema() string {
	return "main"
}

func (s *SQLiteStore) GetTables(ctx context.Context, schemaName string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT name
		FROM %s.sqlite_master
		WHERE type = 'table'
		  AND name NOT LIKE 'sqlite_%%'
		ORDER BY name
	`, quoteIdent(schemaName))

	var tables []string
	if err := s.db.SelectContext(ctx, &tables, query); err != nil {
		return nil, err
	}
	return tables, nil
}

type sqliteColumnRow struct {
	CID          int            `db:"cid"`
	Name         string         `db:"name"`
	Type         string         `db:"type"`
	NotNull      bool           `db:"notnull"`
	DefaultValue sql.NullString `db:"dflt_value"`
	PK           int            `db:"pk"`
}

func (s *SQLiteStore) GetColumns(ctx context.Context, schemaName, tableName string) ([]ColumnInfo, error) {
	var raw []sqliteColumnRow
	err := s.db.SelectContext(ctx, &raw,
		`SELECT cid, name, type, "notnull", dflt_value, pk FROM pragma_table_info(?, ?) ORDER BY cid`,
		tableName, schemaName)
	if err != nil {
		return nil, err
	}

	columns := make([]ColumnInfo, 0, len(raw))
	for _, r := range raw {
		dbType := strings.ToLower(r.Type)
		col := ColumnInfo{
			Name:       r.Name,
			DBType:     dbType,
			IsNullable: !r.NotNull && r.PK == 0,
			MaxLength:  typeLength(dbType),
		}
		if r.DefaultValue.Valid {
			col.HasDefault = true
			col.DefaultValue = strings.Trim(r.DefaultValue.String, "'")
		}
		// INTEGER PRIMARY KEY aliases the rowid and is generated.
		if r.PK > 0 && dbType == "integer" {
			col.HasDefault = true
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func (s *SQLiteStore) GetPrimaryKey(ctx context.Context, schemaName, tableName string, columns []ColumnInfo) (*PrimaryKeyInfo, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names,
		`SELECT name FROM pragma_table_info(?, ?) WHERE pk > 0 ORDER BY pk LIMIT 1`,
		tableName, schemaName)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	return primaryKeyFrom(names[0], columns)
}

type sqliteForeignKeyRow struct {
	Table    string `db:"table"`
	From     string `db:"from"`
	To       string `db:"to"`
	OnUpdate string `db:"on_update"`
	OnDelete string `db:"on_delete"`
}

func (s *SQLiteStore) GetForeignKeys(ctx context.Context, schemaName, tableName string) ([]ForeignKeyInfo, error) {
	var raw []sqliteForeignKeyRow
	err := s.db.SelectContext(ctx, &raw,
		`SELECT "table", "from", "to", on_update, on_delete FROM pragma_foreign_key_list(?, ?) ORDER BY id, seq`,
		tableName, schemaName)
	if err != nil {
		return nil, err
	}

	fks := make([]ForeignKeyInfo, 0, len(raw))
	for _, r := range raw {
		fks = append(fks, ForeignKeyInfo{
			ColumnName: r.From,
			RefTable:   r.Table,
			RefSchema:  schemaName,
			RefColumn:  r.To,
			OnUpdate:   normalizeRule(r.OnUpdate),
			OnDelete:   normalizeRule(r.OnDelete),
		})
	}
	return fks, nil
}

type sqliteIndexRow struct {
	Name   string `db:"name"`
	Unique bool   `db:"unique"`
	Origin string `db:"origin"`
}

func (s *SQLiteStore) GetIndexes(ctx context.Context, schemaName, tableName string) ([]IndexInfo, error) {
	var raw []sqliteIndexRow
	err := s.db.SelectContext(ctx, &raw,
		`SELECT name, "unique", origin FROM pragma_index_list(?, ?) WHERE origin != 'pk' ORDER BY name`,
		tableName, schemaName)
	if err != nil {
		return nil, err
	}

	indexes := make([]IndexInfo, 0, len(raw))
	for _, r := range raw {
		var cols []string
		err := s.db.SelectContext(ctx, &cols,
			`SELECT name FROM pragma_index_info(?, ?) WHERE name IS NOT NULL ORDER BY seqno`,
			r.Name, schemaName)
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", r.Name, err)
		}
		indexes = append(indexes, IndexInfo{
			Name:    r.Name,
			Columns: cols,
			Unique:  r.Unique,
		})
	}
	return indexes, nil
}

// GetConstraints reports UNIQUE constraints declared in the table body. SQLite
// keeps no catalog of CHECK constraints.
func (s *SQLiteStore) GetConstraints(ctx context.Context, schemaName, tableName string) ([]ConstraintInfo, error) {
	var raw []sqliteIndexRow
	err := s.db.SelectContext(ctx, &raw,
		`SELECT name, "unique", origin FROM pragma_index_list(?, ?) WHERE origin = 'u' ORDER BY name`,
		tableName, schemaName)
	if err != nil {
		return nil, err
	}

	constraints := make([]ConstraintInfo, 0, len(raw))
	for _, r := range raw {
		var cols []string
		err := s.db.SelectContext(ctx, &cols,
			`SELECT name FROM pragma_index_info(?, ?) ORDER BY seqno`, r.Name, schemaName)
		if err != nil {
			return nil, fmt.Errorf("constraint %s: %w", r.Name, err)
		}
		constraints = append(constraints, ConstraintInfo{
			Name:       r.Name,
			Type:       "UNIQUE",
			Definition: "UNIQUE (" + strings.Join(cols, ", ") + ")",
		})
	}
	return constraints, nil
}

func (s *SQLiteStore) GetTableComment(context.Context, string, string) (string, error) {
	return "", nil
}

var lengthSuffix = regexp.MustCompile(`^(?:var)?char\w*\s*\((\d+)\)$`)

func typeLength(dbType string) int {
	m := lengthSuffix.FindStringSubmatch(dbType)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
