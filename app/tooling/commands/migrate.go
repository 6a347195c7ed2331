package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/jrazmi/stockdata/infrastructure/datastores"
)

// Migrate checks the database and applies pending migrations.
func Migrate(ctx context.Context, log *slog.Logger, ds *datastores.Datastore) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	log.InfoContext(ctx, "migration started", "step", "checking database status")
	if err := ds.StatusCheck(ctx); err != nil {
		return fmt.Errorf("database status check failed: %w", err)
	}

	log.InfoContext(ctx, "database status check successful", "step", "running migrations")
	if err := ds.Migrate(ctx, log); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// Status writes the applied migrations as a table.
func Status(ctx context.Context, w io.Writer, ds *datastores.Datastore) error {
	applied, err := ds.AppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("applied migrations: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tAPPLIED AT\tCHECKSUM")
	for _, m := range applied {
		fmt.Fprintf(tw, "%s\t%s\t%.12s\n", m.Version, m.AppliedAt.Format(time.RFC3339), m.Checksum)
	}
	if len(applied) == 0 {
		fmt.Fprintln(tw, "(none)\t\t")
	}
	return tw.Flush()
}
