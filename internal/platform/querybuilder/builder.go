// Package querybuilder renders the small set of postgres statements the
// repositories need with $n placeholders, so sqlx can run them unchanged.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates SQL text and its bound arguments. Placeholders are
// numbered in the order values are bound.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) str(parts ...string) {
	for _, p := range parts {
		w.sql.WriteString(p)
	}
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.sql.WriteByte('$')
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes a raw fragment, binding one argument per '?'. A '?' with no
// argument left is written as-is.
func (w *writer) expr(fragment string, args []any) {
	if len(args) == 0 {
		w.sql.WriteString(fragment)
		return
	}
	next := 0
	for _, r := range fragment {
		if r == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.sql.WriteRune(r)
	}
}

func (w *writer) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.str(" WHERE ")
		} else {
			w.str(" AND ")
		}
		c(w)
	}
}

func (w *writer) done() (string, []any, error) {
	return w.sql.String(), w.args, nil
}

// Condition is one predicate of a WHERE clause; multiple are joined by AND.
type Condition func(w *writer)

func Eq(column string, value any) Condition {
	return func(w *writer) {
		w.str(column, " = ")
		w.bind(value)
	}
}

func IsNull(column string) Condition {
	return func(w *writer) { w.str(column, " IS NULL") }
}

// Expr is a raw predicate using '?' for its arguments.
func Expr(fragment string, args ...any) Condition {
	return func(w *writer) { w.expr(fragment, args) }
}

// Any matches column against a postgres array argument, e.g. pq.Array(ids).
// One placeholder regardless of the set size.
func Any(column string, array any) Condition {
	return func(w *writer) {
		w.str(column, " = ANY(")
		w.bind(array)
		w.str(")")
	}
}

type SelectBuilder struct {
	columns   []string
	table     string
	where     []Condition
	orderBy   []string
	limit     int
	forUpdate bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.forUpdate = true
	return b
}

// Limit caps the row count; zero or negative means no LIMIT clause.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("select: no columns")
	case b.table == "":
		return "", nil, errors.New("select: no table")
	}

	var w writer
	w.str("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.str(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.str(" LIMIT ", strconv.Itoa(b.limit))
	}
	if b.forUpdate {
		w.str(" FOR UPDATE")
	}
	return w.done()
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
	b.columns = columns
	return b
}

// Values appends one row; call it once per row for multi-row inserts.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

// Suffix is appended verbatim, e.g. an ON CONFLICT or RETURNING clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.table == "":
		return "", nil, errors.New("insert: no table")
	case len(b.columns) == 0:
		return "", nil, errors.New("insert: no columns")
	case len(b.rows) == 0:
		return "", nil, errors.New("insert: no rows")
	}

	var w writer
	w.args = make([]any, 0, len(b.rows)*len(b.columns))
	w.str("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert: row %d has %d values for %d columns", i, len(row), len(b.columns))
		}
		if i > 0 {
			w.str(", ")
		}
		w.str("(")
		for j, v := range row {
			if j > 0 {
				w.str(", ")
			}
			w.bind(v)
		}
		w.str(")")
	}
	if b.suffix != "" {
		w.str(" ", b.suffix)
	}
	return w.done()
}

type UpdateBuilder struct {
	table string
	sets  []func(w *writer)
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, func(w *writer) {
		w.str(column, " = ")
		w.bind(value)
	})
	return b
}

// SetExpr assigns a raw expression such as NOW() or "attempts + ?".
func (b *UpdateBuilder) SetExpr(column, fragment string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, func(w *writer) {
		w.str(column, " = ")
		w.expr(fragment, args)
	})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.table == "":
		return "", nil, errors.New("update: no table")
	case len(b.sets) == 0:
		return "", nil, errors.New("update: nothing to set")
	}

	var w writer
	w.str("UPDATE ", b.table, " SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.str(", ")
		}
		set(&w)
	}
	w.where(b.where)
	return w.done()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.where = append(b.where, conds...)
	return b
}

// ToSQL refuses to render an unfiltered DELETE.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.table == "":
		return "", nil, errors.New("delete: no table")
	case len(b.where) == 0:
		return "", nil, errors.New("delete: refusing to delete without a condition")
	}

	var w writer
	w.str("DELETE FROM ", b.table)
	w.where(b.where)
	return w.done()
}
