package reflector

import (
	"context"
	"time"
)

// ReflectedSchema represents the complete schema reflection for a single database schema
type ReflectedSchema struct {
	Version     string                `json:"version"`      // Schema format version (e.g., "1.0")
	Source      string                `json:"source"`       // Database type: postgres or sqlite
	Database    string                `json:"database"`     // Database name
	SchemaName  string                `json:"schema_name"`  // Schema name (public, main)
	ReflectedAt time.Time             `json:"reflected_at"` // Timestamp of reflection
	Tables      map[string]*TableInfo `json:"tables"`       // Map of table_name -> TableInfo
}

// TableInfo represents a single table's metadata
type TableInfo struct {
	TableName   string           `json:"table_name"`
	Schema      string           `json:"schema"`
	PrimaryKey  *PrimaryKeyInfo  `json:"primary_key"`
	Columns     []ColumnInfo     `json:"columns"`
	ForeignKeys []ForeignKeyInfo `json:"foreign_keys"`
	Indexes     []IndexInfo      `json:"indexes"`
	Constraints []ConstraintInfo `json:"constraints"`
	Comment     string           `json:"comment,omitempty"`
}

// Column returns the named column.
func (t *TableInfo) Column(name string) (ColumnInfo, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnInfo{}, false
}

// ColumnInfo represents a single column's metadata
type ColumnInfo struct {
	Name         string `json:"name"`
	DBType       string `json:"db_type"` // e.g. "bigint", "varchar(20)"
	IsNullable   bool   `json:"is_nullable"`
	IsPrimaryKey bool   `json:"is_primary_key"`
	IsForeignKey bool   `json:"is_foreign_key"`
	DefaultValue string `json:"default_value,omitempty"`
	HasDefault   bool   `json:"has_default"`
	MaxLength    int    `json:"max_length,omitempty"` // For varchar(n)
	Precision    int    `json:"precision,omitempty"`  // For numeric(p,s)
	Scale        int    `json:"scale,omitempty"`      // For numeric(p,s)
	Comment      string `json:"comment,omitempty"`
}

// PrimaryKeyInfo represents primary key metadata
type PrimaryKeyInfo struct {
	Column      string `json:"column"`
	DBType      string `json:"db_type"`
	HasDefault  bool   `json:"has_default"`
	DefaultExpr string `json:"default_expr,omitempty"`
}

// ForeignKeyInfo represents a foreign key relationship
type ForeignKeyInfo struct {
	ColumnName string `json:"column_name"`
	RefTable   string `json:"ref_table"`
	RefSchema  string `json:"ref_schema"`
	RefColumn  string `json:"ref_column"`
	OnDelete   string `json:"on_delete"` // CASCADE, SET_NULL, RESTRICT, NO_ACTION
	OnUpdate   string `json:"on_update"` // CASCADE, SET_NULL, RESTRICT, NO_ACTION
}

// IndexInfo represents an index. Unique constraints show up here through
// their backing index.
type IndexInfo struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
	Method  string   `json:"method,omitempty"` // btree, hash, gin; empty for sqlite
}

// ConstraintInfo represents a table constraint (CHECK, UNIQUE, EXCLUDE)
type ConstraintInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`       // CHECK, UNIQUE, EXCLUDE
	Definition string `json:"definition"` // The constraint expression
}

// Store queries one database's catalog.
type Store interface {
	// GetTables returns all table names in the schema
	GetTables(ctx context.Context, schemaName string) ([]string, error)

	// GetColumns returns column metadata for a table
	GetColumns(ctx context.Context, schemaName, tableName string) ([]ColumnInfo, error)

	// GetPrimaryKey returns primary key information, or nil for a table without one
	GetPrimaryKey(ctx context.Context, schemaName, tableName string, columns []ColumnInfo) (*PrimaryKeyInfo, error)

	// GetForeignKeys returns foreign key relationships
	GetForeignKeys(ctx context.Context, schemaName, tableName string) ([]ForeignKeyInfo, error)

	// GetIndexes returns index information
	GetIndexes(ctx context.Context, schemaName, tableName string) ([]IndexInfo, error)

	// GetConstraints returns constraint information
	GetConstraints(ctx context.Context, schemaName, tableName string) ([]ConstraintInfo, error)

	// GetTableComment returns table comment
	GetTableComment(ctx context.Context, schemaName, tableName string) (string, error)

	// GetDatabaseName returns the database name
	GetDatabaseName() string

	// GetSourceType returns the database type (postgres, sqlite)
	GetSourceType() string

	// DefaultSchema is the schema reflected when none is named.
	DefaultSchema() string
}

// Config holds configuration for schema reflection output
type Config struct {
	SchemaName string `env:"SCHEMA_NAME"` // Schema to reflect, store default when empty
	OutputDir  string `env:"SCHEMA_OUTPUT_DIR" default:"schema/reflected"`
}
