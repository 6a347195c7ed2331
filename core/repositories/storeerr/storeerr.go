// Package storeerr translates database driver errors into the sentinels of
// the repositories package.
package storeerr

import (
	"errors"
	"fmt"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/infrastructure/postgresdb"
	"github.com/jrazmi/stockdata/infrastructure/sqlitedb"
)

// Postgres maps a pgx error.
func Postgres(err error) error {
	if err == nil {
		return nil
	}
	err = postgresdb.HandlePgError(err)
	switch {
	case errors.Is(err, postgresdb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, postgresdb.ErrDBDuplicatedEntry):
		return fmt.Errorf("%w: %w", repositories.ErrDuplicate, err)
	case errors.Is(err, postgresdb.ErrDBForeignKey):
		return fmt.Errorf("%w: %w", repositories.ErrInvalidReference, err)
	case errors.Is(err, postgresdb.ErrDBInvalidValue):
		return fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
	}
	return err
}

// SQLite maps a modernc.org/sqlite error.
func SQLite(err error) error {
	if err == nil {
		return nil
	}
	err = sqlitedb.HandleSQLiteError(err)
	switch {
	case errors.Is(err, sqlitedb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, sqlitedb.ErrDBDuplicatedEntry):
		return fmt.Errorf("%w: %w", repositories.ErrDuplicate, err)
	case errors.Is(err, sqlitedb.ErrDBForeignKey):
		return fmt.Errorf("%w: %w", repositories.ErrInvalidReference, err)
	case errors.Is(err, sqlitedb.ErrDBInvalidValue):
		return fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
	}
	return err
}
