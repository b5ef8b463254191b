package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errNoColumns = errors.New("columns are required")
	errNoTable   = errors.New("table is required")
	errNoValues  = errors.New("values are required")
)

type Condition interface {
	appendSQL(buf *strings.Builder, args *[]any, argIndex *int)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func (c compareCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	buf.WriteString(c.column)
	buf.WriteString(" ")
	buf.WriteString(c.op)
	buf.WriteString(" ")
	buf.WriteString(placeholder(*argIndex))
	*args = append(*args, c.value)
	*argIndex++
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

func Lt(column string, value any) Condition {
	return compareCondition{column: column, op: "<", value: value}
}

func Lte(column string, value any) Condition {
	return compareCondition{column: column, op: "<=", value: value}
}

type exprCondition struct {
	expr string
	args []any
}

// Expr embeds raw SQL where each ? is bound to the next arg.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	buf.WriteString(rewritePlaceholders(c.expr, c.args, args, argIndex))
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
	if len(b.columns) == 0 {
		return "", nil, errNoColumns
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)

	args := make([]any, 0, len(b.where))
	argIndex := 1
	if len(b.where) > 0 {
		buf.WriteString(" WHERE ")
		for i, c := range b.where {
			if i > 0 {
				buf.WriteString(" AND ")
			}
			c.appendSQL(&buf, &args, &argIndex)
		}
	}
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(b.limit))
	}
	return buf.String(), args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
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
	b.values = append([]any(nil), values...)
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

// OnConflictUpdate appends an ON CONFLICT upsert that overwrites every
// column in update with its EXCLUDED value plus any extra SET fragments.
func (b *InsertBuilder) OnConflictUpdate(conflict []string, update []string, extra ...string) *InsertBuilder {
	sets := make([]string, 0, len(update)+len(extra))
	for _, col := range update {
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	sets = append(sets, extra...)

	var buf strings.Builder
	buf.WriteString("ON CONFLICT (")
	buf.WriteString(strings.Join(conflict, ", "))
	buf.WriteString(")")
	if len(sets) == 0 {
		buf.WriteString(" DO NOTHING")
	} else {
		buf.WriteString(" DO UPDATE SET ")
		buf.WriteString(strings.Join(sets, ", "))
	}
	b.suffix = buf.String()
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.columns) == 0 {
		return "", nil, errNoColumns
	}
	if len(b.values) != len(b.columns) {
		return "", nil, errNoValues
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES (")
	for i := range b.values {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(placeholder(i + 1))
	}
	buf.WriteString(")")
	if b.suffix != "" {
		buf.WriteString(" ")
		buf.WriteString(b.suffix)
	}
	return buf.String(), append([]any(nil), b.values...), nil
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}

func rewritePlaceholders(expr string, exprArgs []any, args *[]any, argIndex *int) string {
	if len(exprArgs) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] != '?' || next >= len(exprArgs) {
			out.WriteByte(expr[i])
			continue
		}
		out.WriteString(placeholder(*argIndex))
		*args = append(*args, exprArgs[next])
		*argIndex++
		next++
	}
	return out.String()
}
