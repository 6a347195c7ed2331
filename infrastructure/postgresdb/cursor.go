package postgresdb

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ApplyCursorPagination adds a keyset condition to w so the query resumes
// after the row identified by (orderValue, keyValue). When orderField is the
// primary key only the key is compared.
func ApplyCursorPagination[K any, O any](
	w *Where,
	data pgx.NamedArgs,
	orderField string,
	pkField string,
	orderValue *O,
	keyValue *K,
	direction string,
	forPrevious bool,
) error {
	if keyValue == nil {
		return nil
	}

	quotedPK, err := QuoteIdentifier(pkField)
	if err != nil {
		return fmt.Errorf("invalid pk field: %w", err)
	}
	operator := determineOperator(direction, forPrevious)
	data["cursor_pk"] = *keyValue

	if orderField == pkField || orderValue == nil {
		w.Add("%s %s @cursor_pk", quotedPK, operator)
		return nil
	}

	quotedOrder, err := QuoteIdentifier(orderField)
	if err != nil {
		return fmt.Errorf("invalid order field: %w", err)
	}

	// ("year", "id") < (2023, 41)
	w.Add("(%s, %s) %s (@cursor_order_value, @cursor_pk)", quotedOrder, quotedPK, operator)
	data["cursor_order_value"] = *orderValue

	return nil
}

func determineOperator(direction string, forPrevious bool) string {
	desc := normalizeDirection(direction) == DESC
	if desc != forPrevious {
		return "<"
	}
	return ">"
}
