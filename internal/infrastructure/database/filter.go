package database

import (
	"fmt"
	"strings"
)

// SortFieldMap maps public sort field names to qualified column names. Only
// these mapped columns ever reach the identifier position of a query.
type SortFieldMap map[string]string

// ResolveSortField maps a requested sort field through the allow-list. An
// unrecognized field silently falls back to created_at so client typos never
// break a listing.
func ResolveSortField(allowed SortFieldMap, requested string) (column, field string) {
	if col, ok := allowed[requested]; ok {
		return col, requested
	}
	if col, ok := allowed["created_at"]; ok {
		return col, "created_at"
	}
	return "created_at", "created_at"
}

// OrderBy builds the ORDER BY fragment from an allow-listed column and a
// normalized sort direction.
func OrderBy(column, order string) string {
	dir := "DESC"
	if order == "asc" {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s", column, dir)
}

// WhereBuilder accumulates AND-joined filter conditions with bound values.
// Column names must come from caller-owned literals or allow-lists.
type WhereBuilder struct {
	conds []string
	args  []any
}

// Search appends a case-insensitive substring match against one or more
// columns, OR-joined into a single condition.
func (b *WhereBuilder) Search(query string, columns ...string) {
	if query == "" || len(columns) == 0 {
		return
	}
	pattern := "%" + query + "%"
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, col+" ILIKE ?")
		b.args = append(b.args, pattern)
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
}

// Equal appends an equality condition with a bound value.
func (b *WhereBuilder) Equal(column string, value any) {
	b.conds = append(b.conds, column+" = ?")
	b.args = append(b.args, value)
}

// Clause returns the composed WHERE clause, or TRUE when no condition was
// added, and the positional parameters in order.
func (b *WhereBuilder) Clause() (string, []any) {
	if len(b.conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(b.conds, " AND "), b.args
}
