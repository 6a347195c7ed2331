package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jrazmi/stockdata/infrastructure/datastores"
	"github.com/jrazmi/stockdata/schema/reflector"
)

// ErrSchemaDrift is returned by VerifySchema when expectations fail.
var ErrSchemaDrift = errors.New("schema does not match expectations")

// ReflectSchema reflects the current database schema and generates JSON/SQL artifacts.
func ReflectSchema(ctx context.Context, log *slog.Logger, args []string, ds *datastores.Datastore) error {
	fs := flag.NewFlagSet("reflect-schema", flag.ContinueOnError)
	schemaName := fs.String("schema", "", "Schema to reflect (default: public for postgres, main for sqlite)")
	outputDir := fs.String("output", "schema/reflected", "Output directory for generated files")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	store := ds.ReflectorStore()
	log.InfoContext(ctx, "reflecting schema", "source", store.GetSourceType(), "database", store.GetDatabaseName(), "schema", *schemaName)

	reflected, err := reflector.NewReflector(store).Reflect(ctx, *schemaName)
	if err != nil {
		return fmt.Errorf("reflect schema: %w", err)
	}
	log.InfoContext(ctx, "discovered tables", "count", len(reflected.Tables))

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	jsonPath := filepath.Join(*outputDir, reflected.SchemaName+".json")
	if err := reflector.WriteJSON(reflected, jsonPath); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	log.InfoContext(ctx, "generated JSON", "path", jsonPath)

	sqlPath := filepath.Join(*outputDir, reflected.SchemaName+".sql")
	if err := reflector.WriteSQL(reflected, sqlPath); err != nil {
		return fmt.Errorf("write SQL: %w", err)
	}
	log.InfoContext(ctx, "generated SQL", "path", sqlPath)

	return nil
}

// VerifySchema reflects the database and reports every expectation it
// violates to w.
func VerifySchema(ctx context.Context, w io.Writer, args []string, ds *datastores.Datastore) error {
	fs := flag.NewFlagSet("verify-schema", flag.ContinueOnError)
	schemaName := fs.String("schema", "", "Schema to verify (default: public for postgres, main for sqlite)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	reflected, err := reflector.NewReflector(ds.ReflectorStore()).Reflect(ctx, *schemaName)
	if err != nil {
		return fmt.Errorf("reflect schema: %w", err)
	}

	violations := reflector.Verify(reflected, reflector.StockDataExpectations())
	if len(violations) == 0 {
		fmt.Fprintf(w, "%s.%s: ok (%d tables)\n", reflected.Database, reflected.SchemaName, len(reflected.Tables))
		return nil
	}

	for _, v := range violations {
		fmt.Fprintln(w, v)
	}
	return fmt.Errorf("%w: %d violations", ErrSchemaDrift, len(violations))
}
