package sqlitedb

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
)

// Set of directions for data ordering.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// QuoteIdentifier validates a column or table.column name and quotes it.
func QuoteIdentifier(name string) (string, error) {
	if !identifierPattern.MatchString(name) {
		return "", fmt.Errorf("invalid identifier: %q", name)
	}
	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, r := range name {
		if r == '.' {
			buf.WriteString(`"."`)
			continue
		}
		buf.WriteRune(r)
	}
	buf.WriteByte('"')
	return buf.String(), nil
}

// Where collects AND-ed conditions for a query.
type Where struct {
	conds []string
}

// Add appends a condition, formatted like fmt.Sprintf.
func (w *Where) Add(format string, args ...any) {
	w.conds = append(w.conds, fmt.Sprintf(format, args...))
}

// Empty reports whether no condition has been added.
func (w *Where) Empty() bool {
	return len(w.conds) == 0
}

// AppendTo writes " WHERE a AND b" to buf, or nothing when empty.
func (w *Where) AppendTo(buf *bytes.Buffer) {
	for i, c := range w.conds {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(c)
	}
}

// AddOrderByClause appends ORDER BY on orderField with pkField as the tie
// breaker.
func AddOrderByClause(buf *bytes.Buffer, orderField, pkField, direction string) error {
	quotedOrder, err := QuoteIdentifier(orderField)
	if err != nil {
		return fmt.Errorf("invalid order field name: %w", err)
	}
	quotedPK, err := QuoteIdentifier(pkField)
	if err != nil {
		return fmt.Errorf("invalid pk field name: %w", err)
	}
	if direction != DESC {
		direction = ASC
	}

	fmt.Fprintf(buf, " ORDER BY %s %s", quotedOrder, direction)
	if orderField != pkField {
		fmt.Fprintf(buf, ", %s %s", quotedPK, direction)
	}
	return nil
}

// AddLimitClause adds a named LIMIT to the query.
func AddLimitClause(limit int, data map[string]any, buf *bytes.Buffer) {
	buf.WriteString(" LIMIT :limit")
	data["limit"] = limit
}

// ApplyCursorPagination adds a keyset condition resuming after the row
// identified by (orderValue, keyValue).
func ApplyCursorPagination[K any, O any](
	w *Where,
	data map[string]any,
	orderField string,
	pkField string,
	orderValue *O,
	keyValue *K,
	direction string,
) error {
	if keyValue == nil {
		return nil
	}

	quotedPK, err := QuoteIdentifier(pkField)
	if err != nil {
		return fmt.Errorf("invalid pk field: %w", err)
	}
	operator := ">"
	if direction == DESC {
		operator = "<"
	}
	data["cursor_pk"] = *keyValue

	if orderField == pkField || orderValue == nil {
		w.Add("%s %s :cursor_pk", quotedPK, operator)
		return nil
	}

	quotedOrder, err := QuoteIdentifier(orderField)
	if err != nil {
		return fmt.Errorf("invalid order field: %w", err)
	}
	w.Add("(%s, %s) %s (:cursor_order_value, :cursor_pk)", quotedOrder, quotedPK, operator)
	data["cursor_order_value"] = *orderValue

	return nil
}

// NamedGet runs a query with :name parameters and scans one row into dest.
func NamedGet(ctx context.Context, q sqlx.QueryerContext, dest any, query string, arg map[string]any) error {
	bound, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind named query: %w", err)
	}
	return sqlx.GetContext(ctx, q, dest, bound, args...)
}

// NamedSelect runs a query with :name parameters and scans all rows into dest.
func NamedSelect(ctx context.Context, q sqlx.QueryerContext, dest any, query string, arg map[string]any) error {
	bound, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind named query: %w", err)
	}
	return sqlx.SelectContext(ctx, q, dest, bound, args...)
}
