// Package querybuilder renders the narrow slice of SQL the postgres
// repositories issue: flat SELECTs, multi-row INSERTs with an upsert
// suffix, and UPDATEs. Statements bind with PostgreSQL-style numbered
// placeholders.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates statement text and the bind arguments that go
// with it. Placeholder numbering follows the argument slice, so text
// and arguments can never drift apart.
type sqlWriter struct {
	sql  strings.Builder
	args []any
}

func (w *sqlWriter) raw(text string) {
	w.sql.WriteString(text)
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.sql.WriteByte('$')
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expand copies a raw fragment, turning each ? into the next numbered
// placeholder. Question marks beyond the supplied values pass through
// untouched.
func (w *sqlWriter) expand(fragment string, values []any) {
	if len(values) == 0 {
		w.raw(fragment)
		return
	}
	next := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '?' && next < len(values) {
			w.bind(values[next])
			next++
			continue
		}
		w.sql.WriteByte(fragment[i])
	}
}

// Cond is one WHERE predicate. Multiple conditions combine with AND.
type Cond func(w *sqlWriter)

func Eq(column string, value any) Cond {
	return func(w *sqlWriter) {
		w.raw(column)
		w.raw(" = ")
		w.bind(value)
	}
}

func In(column string, values []any) Cond {
	return func(w *sqlWriter) {
		if len(values) == 0 {
			// An empty IN list matches no rows.
			w.raw("1=0")
			return
		}
		w.raw(column)
		w.raw(" IN (")
		for i, value := range values {
			if i > 0 {
				w.raw(", ")
			}
			w.bind(value)
		}
		w.raw(")")
	}
}

// Expr embeds a raw predicate with ?-style placeholders for anything
// the typed helpers cannot express.
func Expr(fragment string, values ...any) Cond {
	return func(w *sqlWriter) {
		w.expand(fragment, values)
	}
}

func writeWhere(w *sqlWriter, conds []Cond) {
	if len(conds) == 0 {
		return
	}
	w.raw(" WHERE ")
	for i, cond := range conds {
		if i > 0 {
			w.raw(" AND ")
		}
		cond(w)
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Cond
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Cond) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select needs columns")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select needs a table")
	}

	w := &sqlWriter{}
	w.raw("SELECT ")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(" FROM ")
	w.raw(b.table)
	writeWhere(w, b.where)
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ")
		w.raw(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.raw(" LIMIT ")
		w.raw(strconv.Itoa(b.limit))
	}

	return w.sql.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends a trailing clause verbatim, typically the ON CONFLICT
// upsert the importers rely on.
func (b *InsertBuilder) Suffix(clause string) *InsertBuilder {
	b.suffix = strings.TrimSpace(clause)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert needs a table")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert needs columns")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert needs values")
	}

	w := &sqlWriter{args: make([]any, 0, len(b.rows)*len(b.columns))}
	w.raw("INSERT INTO ")
	w.raw(b.table)
	w.raw(" (")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(") VALUES ")

	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values for %d columns", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.raw(", ")
		}
		w.raw("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.raw(", ")
			}
			w.bind(value)
		}
		w.raw(")")
	}

	if b.suffix != "" {
		w.raw(" ")
		w.raw(b.suffix)
	}

	return w.sql.String(), w.args, nil
}

type setClause struct {
	column   string
	value    any
	fragment string
	values   []any
	isExpr   bool
}

type UpdateBuilder struct {
	table string
	sets  []setClause
	where []Cond
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

// SetExpr assigns a raw expression such as NOW(), with ?-placeholders
// bound in order.
func (b *UpdateBuilder) SetExpr(column, fragment string, values ...any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, fragment: fragment, values: values, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conds ...Cond) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update needs a table")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update needs set clauses")
	}

	w := &sqlWriter{}
	w.raw("UPDATE ")
	w.raw(b.table)
	w.raw(" SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(set.column)
		w.raw(" = ")
		if set.isExpr {
			w.expand(set.fragment, set.values)
			continue
		}
		w.bind(set.value)
	}
	writeWhere(w, b.where)

	return w.sql.String(), w.args, nil
}
