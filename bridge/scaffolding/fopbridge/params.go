package fopbridge

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jrazmi/stockdata/core/scaffolding/fop"
)

// PageParams are the paging and ordering values every list endpoint accepts.
type PageParams struct {
	Limit  string
	Cursor string
	Order  string
}

func ParsePageParams(r *http.Request) PageParams {
	q := r.URL.Query()
	return PageParams{
		Limit:  q.Get("limit"),
		Cursor: q.Get("cursor"),
		Order:  q.Get("order"),
	}
}

// Page validates the limit and cursor.
func (p PageParams) Page() (fop.PageStringCursor, error) {
	return fop.ParsePageStringCursor(p.Limit, p.Cursor)
}

// OrderBy resolves the order parameter against the public field names in
// fields. An unknown field is an error, an empty one yields def.
func (p PageParams) OrderBy(fields map[string]string, def fop.By) (fop.By, error) {
	return fop.ParseOrder(fields, p.Order, def)
}

// ParseID parses a positive path id.
func ParseID(name, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, value)
	}
	return id, nil
}

// OptionalInt64 parses value when present.
func OptionalInt64(name, value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, value)
	}
	return &v, nil
}

// OptionalInt parses value when present.
func OptionalInt(name, value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, value)
	}
	return &v, nil
}

// OptionalString returns nil for an empty value.
func OptionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
