// Package reflector reads table, key and index metadata back out of a live
// database, writes it as JSON or SQL, and checks it against the expected
// stock data schema.
package reflector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"
)

// Reflector orchestrates schema reflection over a Store.
type Reflector struct {
	store Store
}

// NewReflector creates a new Reflector with the given store
func NewReflector(store Store) *Reflector {
	return &Reflector{
		store: store,
	}
}

// Reflect returns the tables of schemaName, or of the store's default schema
// when schemaName is empty.
func (r *Reflector) Reflect(ctx context.Context, schemaName string) (*ReflectedSchema, error) {
	if schemaName == "" {
		schemaName = r.store.DefaultSchema()
	}

	schema := &ReflectedSchema{
		Version:     "1.0",
		Source:      r.store.GetSourceType(),
		Database:    r.store.GetDatabaseName(),
		SchemaName:  schemaName,
		ReflectedAt: time.Now().UTC(),
		Tables:      make(map[string]*TableInfo),
	}

	tables, err := r.store.GetTables(ctx, schemaName)
	if err != nil {
		return nil, fmt.Errorf("get tables: %w", err)
	}

	for _, tableName := range tables {
		tableInfo, err := r.reflectTable(ctx, schemaName, tableName)
		if err != nil {
			return nil, err
		}
		schema.Tables[tableName] = tableInfo
	}

	return schema, nil
}

func (r *Reflector) reflectTable(ctx context.Context, schemaName, tableName string) (*TableInfo, error) {
	tableInfo := &TableInfo{
		TableName:   tableName,
		Schema:      schemaName,
		Columns:     []ColumnInfo{},
		ForeignKeys: []ForeignKeyInfo{},
		Indexes:     []IndexInfo{},
		Constraints: []ConstraintInfo{},
	}

	columns, err := r.store.GetColumns(ctx, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("get columns for %s: %w", tableName, err)
	}
	tableInfo.Columns = columns

	pk, err := r.store.GetPrimaryKey(ctx, schemaName, tableName, columns)
	if err != nil {
		return nil, fmt.Errorf("get primary key for %s: %w", tableName, err)
	}
	tableInfo.PrimaryKey = pk

	if pk != nil {
		for i := range tableInfo.Columns {
			if tableInfo.Columns[i].Name == pk.Column {
				tableInfo.Columns[i].IsPrimaryKey = true
			}
		}
	}

	fks, err := r.store.GetForeignKeys(ctx, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("get foreign keys for %s: %w", tableName, err)
	}
	if fks != nil {
		tableInfo.ForeignKeys = fks
	}

	for i := range tableInfo.Columns {
		for _, fk := range fks {
			if tableInfo.Columns[i].Name == fk.ColumnName {
				tableInfo.Columns[i].IsForeignKey = true
			}
		}
	}

	indexes, err := r.store.GetIndexes(ctx, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("get indexes for %s: %w", tableName, err)
	}
	if indexes != nil {
		tableInfo.Indexes = indexes
	}

	constraints, err := r.store.GetConstraints(ctx, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("get constraints for %s: %w", tableName, err)
	}
	if constraints != nil {
		tableInfo.Constraints = constraints
	}

	comment, err := r.store.GetTableComment(ctx, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("get comment for %s: %w", tableName, err)
	}
	tableInfo.Comment = comment

	return tableInfo, nil
}

// WriteJSON writes the schema to a JSON file
func WriteJSON(schema *ReflectedSchema, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	return encoder.Encode(schema)
}

// WriteSQL writes the schema to an SQL file (documentation format)
func WriteSQL(schema *ReflectedSchema, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return EncodeSQL(file, schema)
}

// EncodeSQL renders schema as CREATE statements.
func EncodeSQL(w io.Writer, schema *ReflectedSchema) error {
	fmt.Fprintf(w, "-- =============================================================================\n")
	fmt.Fprintf(w, "-- Schema Reflection: %s.%s (%s)\n", schema.Database, schema.SchemaName, schema.Source)
	fmt.Fprintf(w, "-- Reflected at: %s\n", schema.ReflectedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "-- Tables: %d\n", len(schema.Tables))
	fmt.Fprintf(w, "-- =============================================================================\n\n")

	for _, tableName := range slices.Sorted(maps.Keys(schema.Tables)) {
		writeTableSQL(w, schema.Tables[tableName])
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("write table %s: %w", tableName, err)
		}
	}

	return nil
}

func writeTableSQL(w io.Writer, table *TableInfo) {
	fmt.Fprintf(w, "-- -----------------------------------------------------------------------------\n")
	fmt.Fprintf(w, "-- Table: %s\n", table.TableName)
	if table.Comment != "" {
		fmt.Fprintf(w, "-- %s\n", table.Comment)
	}
	fmt.Fprintf(w, "-- -----------------------------------------------------------------------------\n")

	fmt.Fprintf(w, "CREATE TABLE %s.%s (\n", table.Schema, table.TableName)

	lines := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		line := fmt.Sprintf("    %s %s", col.Name, col.DBType)
		if !col.IsNullable {
			line += " NOT NULL"
		}
		if col.HasDefault && col.DefaultValue != "" {
			line += fmt.Sprintf(" DEFAULT %s", col.DefaultValue)
		}
		lines = append(lines, line)
	}

	if table.PrimaryKey != nil {
		lines = append(lines, fmt.Sprintf("    PRIMARY KEY (%s)", table.PrimaryKey.Column))
	}

	for _, fk := range table.ForeignKeys {
		fkLine := fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s.%s(%s)",
			fk.ColumnName,
			fk.RefSchema,
			fk.RefTable,
			fk.RefColumn,
		)
		if fk.OnDelete != "" && fk.OnDelete != "NO_ACTION" {
			fkLine += fmt.Sprintf(" ON DELETE %s", strings.ReplaceAll(fk.OnDelete, "_", " "))
		}
		if fk.OnUpdate != "" && fk.OnUpdate != "NO_ACTION" {
			fkLine += fmt.Sprintf(" ON UPDATE %s", strings.ReplaceAll(fk.OnUpdate, "_", " "))
		}
		lines = append(lines, fkLine)
	}

	for _, constraint := range table.Constraints {
		if constraint.Type == "CHECK" {
			lines = append(lines, fmt.Sprintf("    CONSTRAINT %s %s", constraint.Name, constraint.Definition))
		}
	}

	fmt.Fprint(w, strings.Join(lines, ",\n"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, ");")

	for _, idx := range table.Indexes {
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		using := ""
		if idx.Method != "" {
			using = "USING " + idx.Method + " "
		}
		fmt.Fprintf(w, "CREATE %sINDEX %s ON %s.%s %s(%s);\n",
			unique,
			idx.Name,
			table.Schema,
			table.TableName,
			using,
			strings.Join(idx.Columns, ", "),
		)
	}

	if table.Comment != "" {
		fmt.Fprintf(w, "\nCOMMENT ON TABLE %s.%s IS '%s';\n",
			table.Schema,
			table.TableName,
			escapeSQLString(table.Comment),
		)
	}

	for _, col := range table.Columns {
		if col.Comment != "" {
			fmt.Fprintf(w, "COMMENT ON COLUMN %s.%s.%s IS '%s';\n",
				table.Schema,
				table.TableName,
				col.Name,
				escapeSQLString(col.Comment),
			)
		}
	}
}

// escapeSQLString escapes single quotes in SQL strings
func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
