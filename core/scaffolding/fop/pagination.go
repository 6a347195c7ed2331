package fop

import (
	"fmt"
	"strconv"
)

// Page size bounds.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageStringCursor represents the requested items per page and where to resume.
type PageStringCursor struct {
	Limit  int
	Cursor string
}

// PageInfoStringCursor returns pagination data. Every slice query should return page info.
type PageInfoStringCursor struct {
	Limit      int    `json:"limit,omitempty"`
	NextCursor string `json:"nextCursor,omitempty"`
	PageTotal  int    `json:"pageTotal"`
}

// ParsePageStringCursor parses the limit and cursor query values.
func ParsePageStringCursor(pageLimit string, cursor string) (PageStringCursor, error) {
	limit := DefaultLimit

	if pageLimit != "" {
		var err error
		limit, err = strconv.Atoi(pageLimit)
		if err != nil {
			return PageStringCursor{}, fmt.Errorf("page limit conversion: %w", err)
		}
	}

	if limit <= 0 {
		return PageStringCursor{}, fmt.Errorf("rows value too small, must be larger than 0")
	}

	if limit > MaxLimit {
		return PageStringCursor{}, fmt.Errorf("rows value too large, must be at most %d", MaxLimit)
	}

	return PageStringCursor{
		Limit:  limit,
		Cursor: cursor,
	}, nil
}

// NewPageInfo builds page info for a result of n rows. A full page carries
// nextCursor so the caller can continue.
func NewPageInfo(page PageStringCursor, n int, nextCursor string) PageInfoStringCursor {
	info := PageInfoStringCursor{
		Limit:     page.Limit,
		PageTotal: n,
	}
	if n > 0 && n == page.Limit {
		info.NextCursor = nextCursor
	}
	return info
}
