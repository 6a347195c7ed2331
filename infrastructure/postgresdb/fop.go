package postgresdb

import (
	"bytes"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Set of directions for data ordering.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// AddOrderByClause appends ORDER BY on orderField with pkField as the tie
// breaker. forPrevious flips the direction for backwards paging.
func AddOrderByClause(buf *bytes.Buffer, orderField, pkField, direction string, forPrevious bool) error {
	quotedOrderField, err := QuoteIdentifier(orderField)
	if err != nil {
		return fmt.Errorf("invalid order field name: %w", err)
	}
	quotedPKField, err := QuoteIdentifier(pkField)
	if err != nil {
		return fmt.Errorf("invalid pk field name: %w", err)
	}

	dir := normalizeDirection(direction)
	if forPrevious {
		dir = flipDirection(dir)
	}

	fmt.Fprintf(buf, " ORDER BY %s %s", quotedOrderField, dir)
	if orderField != pkField {
		fmt.Fprintf(buf, ", %s %s", quotedPKField, dir)
	}

	return nil
}

// AddLimitClause adds LIMIT clause to the query buffer
func AddLimitClause(limit int, data pgx.NamedArgs, buf *bytes.Buffer) {
	buf.WriteString(" LIMIT @limit")
	data["limit"] = limit
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

func normalizeDirection(direction string) string {
	if direction == DESC {
		return DESC
	}
	return ASC
}

func flipDirection(direction string) string {
	if direction == ASC {
		return DESC
	}
	return ASC
}
