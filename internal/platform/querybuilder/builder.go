// Package querybuilder renders the small set of PostgreSQL statements the
// roster repositories need, with $n placeholders numbered in bind order.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// statement accumulates SQL text and its positional arguments. The next
// placeholder number is always len(args)+1.
type statement struct {
	strings.Builder
	args []any
}

func (s *statement) bind(value any) {
	s.args = append(s.args, value)
	s.WriteByte('$')
	s.WriteString(strconv.Itoa(len(s.args)))
}

// expr writes raw SQL, binding each ? to the next value of values. Surplus
// question marks are written as-is.
func (s *statement) expr(raw string, values []any) {
	next := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] != '?' || next >= len(values) {
			s.WriteByte(raw[i])
			continue
		}
		s.bind(values[next])
		next++
	}
}

func (s *statement) list(items []string) {
	s.WriteString(strings.Join(items, ", "))
}

func (s *statement) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.WriteString(" WHERE ")
		} else {
			s.WriteString(" AND ")
		}
		c(s)
	}
}

func (s *statement) suffix(raw string) {
	if raw == "" {
		return
	}
	s.WriteByte(' ')
	s.WriteString(raw)
}

func (s *statement) result() (string, []any, error) {
	return s.String(), s.args, nil
}

// Condition is one predicate of a WHERE clause. Conditions are joined with AND.
type Condition func(*statement)

func Eq(column string, value any) Condition {
	return func(s *statement) {
		s.WriteString(column)
		s.WriteString(" = ")
		s.bind(value)
	}
}

func IsNull(column string) Condition {
	return func(s *statement) {
		s.WriteString(column)
		s.WriteString(" IS NULL")
	}
}

// EqFold matches column against value case-insensitively. Team and nation
// names are looked up this way.
func EqFold(column, value string) Condition {
	folded := foldValue(value)
	return func(s *statement) {
		s.WriteString("lower(" + column + ") = ")
		s.bind(folded)
	}
}

// EqFoldLiteral is EqFold with the value inlined, for poolers that reject
// bound parameters.
func EqFoldLiteral(column, value string) Condition {
	folded := foldValue(value)
	return func(s *statement) {
		s.WriteString("lower(" + column + ") = ")
		s.WriteString(quoteLiteral(folded))
	}
}

func foldValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

// Count selects the number of rows of table matching the later Where.
func Count(table string) *SelectBuilder {
	return Select("COUNT(1)").From(table)
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("select table is required")
	}

	var s statement
	s.WriteString("SELECT ")
	s.list(b.columns)
	s.WriteString(" FROM " + b.table)
	s.where(b.where)
	if len(b.orderBy) > 0 {
		s.WriteString(" ORDER BY ")
		s.list(b.orderBy)
	}
	if b.limit > 0 {
		s.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}
	return s.result()
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

// Suffix appends raw SQL such as ON CONFLICT or RETURNING.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("insert table is required")
	case len(b.columns) == 0:
		return "", nil, errors.New("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, errors.New("insert values are required")
	}

	var s statement
	s.args = make([]any, 0, len(b.rows)*len(b.columns))
	s.WriteString("INSERT INTO " + b.table + " (")
	s.list(b.columns)
	s.WriteString(") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteByte('(')
		for j, value := range row {
			if j > 0 {
				s.WriteString(", ")
			}
			s.bind(value)
		}
		s.WriteByte(')')
	}
	s.suffix(b.suffix)
	return s.result()
}

// assignment renders one "column = ..." item of an UPDATE.
type assignment func(*statement)

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, func(s *statement) {
		s.WriteString(column + " = ")
		s.bind(value)
	})
	return b
}

// SetExpr assigns a raw expression such as NOW(), using ? for its arguments.
func (b *UpdateBuilder) SetExpr(column, raw string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, func(s *statement) {
		s.WriteString(column + " = ")
		s.expr(raw, args)
	})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("update table is required")
	case len(b.sets) == 0:
		return "", nil, errors.New("update sets are required")
	}

	var s statement
	s.WriteString("UPDATE " + b.table + " SET ")
	for i, set := range b.sets {
		if i > 0 {
			s.WriteString(", ")
		}
		set(&s)
	}
	s.where(b.where)
	return s.result()
}
