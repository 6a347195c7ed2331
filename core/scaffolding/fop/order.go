// Package fop holds the filter, order and pagination primitives shared by the
// repositories, stores and bridges.
package fop

import (
	"errors"
	"fmt"
	"strings"
)

// Set of directions for data ordering.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

var directions = map[string]string{
	"ASC":  ASC,
	"DESC": DESC,
}

// ErrUnknownOrderField is returned when an order field is not in the allowed map.
var ErrUnknownOrderField = errors.New("unknown order field")

// By represents a field used to order by and direction.
type By struct {
	Field     string
	Direction string
}

// NewBy constructs a new By value with no checks.
func NewBy(field string, direction string) By {
	return By{
		Field:     field,
		Direction: direction,
	}
}

// ParseOrder parses "field" or "field,direction" against fieldMappings, which
// maps public names to column names. An empty value yields defaultOrder.
func ParseOrder(fieldMappings map[string]string, orderBy string, defaultOrder By) (By, error) {
	if strings.TrimSpace(orderBy) == "" {
		return defaultOrder, nil
	}

	parts := strings.Split(orderBy, ",")
	if len(parts) > 2 {
		return By{}, fmt.Errorf("invalid order %q: expected field[,direction]", orderBy)
	}

	name := strings.TrimSpace(parts[0])
	field, exists := fieldMappings[name]
	if !exists {
		return By{}, fmt.Errorf("%w: %q", ErrUnknownOrderField, name)
	}

	if len(parts) == 1 {
		return NewBy(field, ASC), nil
	}

	dir := strings.ToUpper(strings.TrimSpace(parts[1]))
	direction, exists := directions[dir]
	if !exists {
		return By{}, fmt.Errorf("unknown direction %q", parts[1])
	}

	return NewBy(field, direction), nil
}
