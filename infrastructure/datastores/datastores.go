// Package datastores opens the configured database backend, Postgres or
// SQLite, behind one handle.
package datastores

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/stockdata/infrastructure/postgresdb"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb"
	"github.com/jrazmi/stockdata/schema/reflector"
	"github.com/jrazmi/stockdata/sdk/environment"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrUnknownDriver is returned for a DB_DRIVER other than postgres or sqlite.
var ErrUnknownDriver = errors.New("unknown database driver")

// Options is the environment facing configuration.
type Options struct {
	Driver string `env:"DB_DRIVER" default:"postgres"`
}

// Migration is one applied migration, whichever backend recorded it.
type Migration struct {
	Version   string    `json:"version"`
	Checksum  string    `json:"checksum"`
	AppliedAt time.Time `json:"applied_at"`
}

// Datastore holds exactly one open backend. Postgres is set when Driver is
// DriverPostgres, SQLite otherwise.
type Datastore struct {
	Driver   string
	Postgres *pgxpool.Pool
	SQLite   *sqlx.DB
	name     string
}

// NewFromEnv opens the backend named by DB_DRIVER, reading the rest of its
// configuration from the same prefix.
func NewFromEnv(prefix string, log *slog.Logger) (*Datastore, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing datastore config: %w", err)
	}

	switch cfg.Driver {
	case DriverPostgres:
		pool, err := postgresdb.NewFromEnv(prefix, postgresdb.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("configuring postgres support: %w", err)
		}
		return NewPostgres(pool), nil

	case DriverSQLite:
		db, err := sqlitedb.NewFromEnv(prefix)
		if err != nil {
			return nil, fmt.Errorf("configuring sqlite support: %w", err)
		}
		return NewSQLite(db, environment.GetNamespaceEnvOrDefault(prefix, "SQLITE_PATH", "stockdata.db")), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

// NewPostgres wraps an open pool.
func NewPostgres(pool *pgxpool.Pool) *Datastore {
	return &Datastore{Driver: DriverPostgres, Postgres: pool, name: pool.Config().ConnConfig.Database}
}

// NewSQLite wraps an open database. name is reported by reflection.
func NewSQLite(db *sqlx.DB, name string) *Datastore {
	return &Datastore{Driver: DriverSQLite, SQLite: db, name: name}
}

// Name is the database name, or the file path for SQLite.
func (d *Datastore) Name() string {
	return d.name
}

// StatusCheck pings the backend.
func (d *Datastore) StatusCheck(ctx context.Context) error {
	if d.Driver == DriverPostgres {
		return postgresdb.StatusCheck(ctx, d.Postgres)
	}
	return sqlitedb.StatusCheck(ctx, d.SQLite)
}

// Migrate applies the embedded migrations for the backend.
func (d *Datastore) Migrate(ctx context.Context, log *slog.Logger) error {
	if d.Driver == DriverPostgres {
		return postgresdb.Migrate(ctx, d.Postgres, log)
	}
	return sqlitedb.Migrate(ctx, d.SQLite, log)
}

// AppliedMigrations lists the recorded migrations ordered by version.
func (d *Datastore) AppliedMigrations(ctx context.Context) ([]Migration, error) {
	var out []Migration
	if d.Driver == DriverPostgres {
		applied, err := postgresdb.AppliedMigrations(ctx, d.Postgres)
		if err != nil {
			return nil, err
		}
		for _, m := range applied {
			out = append(out, Migration(m))
		}
		return out, nil
	}

	applied, err := sqlitedb.AppliedMigrations(ctx, d.SQLite)
	if err != nil {
		return nil, err
	}
	for _, m := range applied {
		out = append(out, Migration(m))
	}
	return out, nil
}

// ReflectorStore returns the catalog reader for the backend.
func (d *Datastore) ReflectorStore() reflector.Store {
	if d.Driver == DriverPostgres {
		return reflector.NewPostgresStore(d.Postgres, d.name)
	}
	return reflector.NewSQLiteStore(d.SQLite, d.name)
}

// Close releases the backend.
func (d *Datastore) Close() error {
	if d.Driver == DriverPostgres {
		d.Postgres.Close()
		return nil
	}
	return d.SQLite.Close()
}
