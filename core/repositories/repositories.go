// Package repositories holds the contracts shared by every repository and its
// stores.
package repositories

import (
	"context"
	"errors"

	"github.com/jrazmi/stockdata/core/scaffolding/fop"
)

// Store-agnostic failures. Stores translate backend errors into these and
// repositories wrap them into domain errors.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("record already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrInvalidInput     = errors.New("invalid input")
)

// Store is the CRUD surface every table store implements. Rows are keyed by
// their int64 surrogate id.
type Store[T any, C any, U any, F any] interface {
	Create(ctx context.Context, input C) (T, error)
	Get(ctx context.Context, id int64) (T, error)
	List(ctx context.Context, filter F, orderBy fop.By, page fop.PageStringCursor) ([]T, error)
	Update(ctx context.Context, id int64, input U) (T, error)
	Delete(ctx context.Context, id int64) error
}
