package reflector

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore reads the Postgres catalog through pgx.
type PostgresStore struct {
	pool   *pgxpool.Pool
	dbName string
}

// NewPostgresStore creates a new PostgreSQL store from an existing connection pool
func NewPostgresStore(pool *pgxpool.Pool, dbName string) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		dbName: dbName,
	}
}

func (s *PostgresStore) GetDatabaseName() string {
	return s.dbName
}

func (s *PostgresStore) GetSourceType() string {
	return "postgres"
}

func (s *PostgresStore) DefaultSchema() string {
	return "public"
}

func (s *PostgresStore) GetTables(ctx context.Context, schemaName string) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := s.pool.Query(ctx, query, schemaName)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

type pgColumnRow struct {
	Name         string  `db:"column_name"`
	DataType     string  `db:"data_type"`
	UDTName      string  `db:"udt_name"`
	IsNullable   string  `db:"is_nullable"`
	DefaultValue *string `db:"column_default"`
	MaxLength    *int64  `db:"character_maximum_length"`
	Precision    *int64  `db:"numeric_precision"`
	Scale        *int64  `db:"numeric_scale"`
	Comment      *string `db:"description"`
}

func (s *PostgresStore) GetColumns(ctx context.Context, schemaName, tableName string) ([]ColumnInfo, error) {
	query := `
		SELECT
			c.column_name::text,
			c.data_type::text,
			c.udt_name::text,
			c.is_nullable::text,
			c.column_default::text,
			c.character_maximum_length::bigint,
			c.numeric_precision::bigint,
			c.numeric_scale::bigint,
			pgd.description
		FROM information_schema.columns c
		LEFT JOIN pg_catalog.pg_statio_all_tables pst
			ON c.table_schema = pst.schemaname
			AND c.table_name = pst.relname
		LEFT JOIN pg_catalog.pg_description pgd
			ON pgd.objoid = pst.relid
			AND pgd.objsubid = c.ordinal_position
		WHERE c.table_schema = $1
		  AND c.table_name = $2
		ORDER BY c.ordinal_position
	`

	rows, err := s.pool.Query(ctx, query, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	raw, err := pgx.CollectRows(rows, pgx.RowToStructByPos[pgColumnRow])
	if err != nil {
		return nil, err
	}

	columns := make([]ColumnInfo, 0, len(raw))
	for _, r := range raw {
		col := ColumnInfo{
			Name:       r.Name,
			DBType:     normalizePostgresType(r.UDTName, r.MaxLength, r.Precision, r.Scale),
			IsNullable: r.IsNullable == "YES",
		}
		if r.DefaultValue != nil {
			col.HasDefault = true
			col.DefaultValue = cleanDefaultValue(*r.DefaultValue)
		}
		if r.MaxLength != nil {
			col.MaxLength = int(*r.MaxLength)
		}
		if r.Precision != nil {
			col.Precision = int(*r.Precision)
		}
		if r.Scale != nil {
			col.Scale = int(*r.Scale)
		}
		if r.Comment != nil {
			col.Comment = *r.Comment
		}
		columns = append(columns, col)
	}

	return columns, nil
}

func (s *PostgresStore) GetPrimaryKey(ctx context.Context, schemaName, tableName string, columns []ColumnInfo) (*PrimaryKeyInfo, error) {
	query := `
		SELECT
			kcu.column_name::text
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema = $1
		  AND tc.table_name = $2
		ORDER BY kcu.ordinal_position
		LIMIT 1
	`

	var columnName string
	err := s.pool.QueryRow(ctx, query, schemaName, tableName).Scan(&columnName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return primaryKeyFrom(columnName, columns)
}

func (s *PostgresStore) GetForeignKeys(ctx context.Context, schemaName, tableName string) ([]ForeignKeyInfo, error) {
	query := `
		SELECT
			kcu.column_name::text,
			ccu.table_schema::text AS foreign_table_schema,
			ccu.table_name::text AS foreign_table_name,
			ccu.column_name::text AS foreign_column_name,
			rc.update_rule::text,
			rc.delete_rule::text
		FROM information_schema.table_constraints AS tc
		JOIN information_schema.key_column_usage AS kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage AS ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		JOIN information_schema.referential_constraints AS rc
			ON rc.constraint_name = tc.constraint_name
			AND rc.constraint_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
		  AND tc.table_schema = $1
		  AND tc.table_name = $2
		ORDER BY kcu.ordinal_position
	`

	rows, err := s.pool.Query(ctx, query, schemaName, tableName)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ForeignKeyInfo, error) {
		var fk ForeignKeyInfo
		err := row.Scan(&fk.ColumnName, &fk.RefSchema, &fk.RefTable, &fk.RefColumn, &fk.OnUpdate, &fk.OnDelete)
		fk.OnUpdate = normalizeRule(fk.OnUpdate)
		fk.OnDelete = normalizeRule(fk.OnDelete)
		return fk, err
	})
}

func (s *PostgresStore) GetIndexes(ctx context.Context, schemaName, tableName string) ([]IndexInfo, error) {
	query := `
		SELECT
			i.relname::text AS index_name,
			ARRAY_AGG(a.attname::text ORDER BY array_position(ix.indkey, a.attnum)) AS column_names,
			ix.indisunique AS is_unique,
			am.amname::text AS index_method
		FROM pg_class t
		JOIN pg_index ix ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_am am ON i.relam = am.oid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
		WHERE n.nspname = $1
		  AND t.relname = $2
		  AND NOT ix.indisprimary
		GROUP BY i.relname, am.amname, ix.indisunique
		ORDER BY i.relname
	`

	rows, err := s.pool.Query(ctx, query, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[IndexInfo])
}

func (s *PostgresStore) GetConstraints(ctx context.Context, schemaName, tableName string) ([]ConstraintInfo, error) {
	query := `
		SELECT
			con.conname::text AS constraint_name,
			CASE con.contype
				WHEN 'c' THEN 'CHECK'
				WHEN 'u' THEN 'UNIQUE'
				WHEN 'x' THEN 'EXCLUDE'
			END AS constraint_type,
			pg_get_constraintdef(con.oid) AS constraint_definition
		FROM pg_constraint con
		JOIN pg_namespace nsp ON nsp.oid = con.connamespace
		JOIN pg_class cls ON cls.oid = con.conrelid
		WHERE nsp.nspname = $1
		  AND cls.relname = $2
		  AND con.contype IN ('c', 'u', 'x')
		ORDER BY con.conname
	`

	rows, err := s.pool.Query(ctx, query, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[ConstraintInfo])
}

func (s *PostgresStore) GetTableComment(ctx context.Context, schemaName, tableName string) (string, error) {
	query := `
		SELECT pg_catalog.obj_description(c.oid, 'pg_class')
		FROM pg_catalog.pg_class c
		JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relname = $2
	`

	var comment *string
	if err := s.pool.QueryRow(ctx, query, schemaName, tableName).Scan(&comment); err != nil {
		return "", err
	}
	if comment != nil {
		return *comment, nil
	}
	return "", nil
}

func primaryKeyFrom(columnName string, columns []ColumnInfo) (*PrimaryKeyInfo, error) {
	for _, c := range columns {
		if c.Name == columnName {
			return &PrimaryKeyInfo{
				Column:      columnName,
				DBType:      c.DBType,
				HasDefault:  c.HasDefault,
				DefaultExpr: c.DefaultValue,
			}, nil
		}
	}
	return nil, fmt.Errorf("primary key column %s not found in columns list", columnName)
}

// normalizeRule turns "SET NULL" into "SET_NULL".
func normalizeRule(rule string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(rule), " ", "_"))
}

func normalizePostgresType(udtName string, maxLength, precision, scale *int64) string {
	switch udtName {
	case "varchar":
		if maxLength != nil && *maxLength > 0 {
			return fmt.Sprintf("varchar(%d)", *maxLength)
		}
		return "varchar"
	case "bpchar":
		if maxLength != nil && *maxLength > 0 {
			return fmt.Sprintf("char(%d)", *maxLength)
		}
		return "char"
	case "numeric":
		if precision != nil && scale != nil && *precision > 0 && *scale > 0 {
			return fmt.Sprintf("numeric(%d,%d)", *precision, *scale)
		} else if precision != nil && *precision > 0 {
			return fmt.Sprintf("numeric(%d)", *precision)
		}
		return "numeric"
	case "int2":
		return "smallint"
	case "int4":
		return "integer"
	case "int8":
		return "bigint"
	case "float4":
		return "real"
	case "float8":
		return "double precision"
	case "_text":
		return "text[]"
	case "_varchar":
		return "varchar[]"
	case "_int4":
		return "integer[]"
	default:
		return udtName
	}
}

var castSuffix = regexp.MustCompile(`::[\w\s]+(\[\])?`)

func cleanDefaultValue(defaultVal string) string {
	defaultVal = castSuffix.ReplaceAllString(defaultVal, "")
	defaultVal = strings.TrimSpace(defaultVal)
	return strings.Trim(defaultVal, "'")
}
