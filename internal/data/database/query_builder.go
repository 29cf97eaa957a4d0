// Package database builds parameterized SQL with sanitized identifiers.
package database

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThan        ConditionType = ">"
	LessThan           ConditionType = "<"
	LessThanOrEqual    ConditionType = "<="
	GreaterThanOrEqual ConditionType = ">="
	ILike              ConditionType = "ILIKE"
	defaultLimit                     = -1
	defaultOffset                    = -1
)

type Condition struct {
	Field string
	Type  ConditionType
	Value any
}

func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		Table:  table,
		Limit:  defaultLimit,
		Offset: defaultOffset,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Columns = cols
	}
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = append(o.Conditions, cond)
	}
}

// WithOrderBy sets the ordering column and direction.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// WithCountOnly sets the query to count only.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) {
		o.CountOnly = true
	}
}

func sanitizeIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

// ColumnList quotes each column and joins them for SELECT or RETURNING.
func ColumnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = sanitizeIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}

func buildSelectClause(options *ListQueryOptions) string {
	if options.CountOnly {
		return "SELECT COUNT(*) "
	}
	if len(options.Columns) == 0 {
		return "SELECT * "
	}
	return "SELECT " + ColumnList(options.Columns) + " "
}

func buildWhereClause(conds []Condition, startParamIndex int) (string, []any, int) {
	parts := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	n := startParamIndex

	for _, c := range conds {
		if c.Field == "" {
			continue
		}
		switch c.Type {
		case Equal, NotEqual, GreaterThan, LessThan, LessThanOrEqual, GreaterThanOrEqual, ILike:
		default:
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s $%d", sanitizeIdentifier(c.Field), c.Type, n))
		args = append(args, c.Value)
		n++
	}

	if len(parts) == 0 {
		return "", args, n
	}
	return "WHERE " + strings.Join(parts, " AND "), args, n
}

func buildPaginationAndOrderClause(options *ListQueryOptions, startParamIndex int, args []any) (string, []any) {
	var clause strings.Builder
	n := startParamIndex

	if options.OrderBy != "" {
		clause.WriteString(" ORDER BY ")
		clause.WriteString(sanitizeIdentifier(options.OrderBy))
		if dir := strings.ToUpper(options.OrderDir); dir == "ASC" || dir == "DESC" {
			clause.WriteString(" " + dir)
		}
	}
	if options.Limit != defaultLimit {
		fmt.Fprintf(&clause, " LIMIT $%d", n)
		args = append(args, options.Limit)
		n++
	}
	if options.Offset != defaultOffset {
		fmt.Fprintf(&clause, " OFFSET $%d", n)
		args = append(args, options.Offset)
	}
	return clause.String(), args
}

// BuildListQuery constructs a SELECT and its arguments from options.
//
//	q, args := BuildListQuery(NewListQueryOptions("cars",
//		WithColumns("id", "brand"),
//		WithCondition(WhereCond("imported", Equal, true)),
//		WithOrderBy("id", "ASC"),
//		WithLimit(10),
//	))
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder
	query.WriteString(buildSelectClause(options))
	query.WriteString("FROM ")
	query.WriteString(sanitizeIdentifier(options.Table))

	where, args, next := buildWhereClause(options.Conditions, 1)
	if where != "" {
		query.WriteString(" " + where)
	}
	if options.CountOnly {
		return query.String(), args
	}

	tail, args := buildPaginationAndOrderClause(options, next, args)
	query.WriteString(tail)
	return query.String(), args
}

// UpdateBuilder accumulates SET assignments for a partial update by id.
type UpdateBuilder struct {
	table string
	sets  []string
	args  []any
}

func NewUpdate(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set assigns v to col.
func (b *UpdateBuilder) Set(col string, v any) *UpdateBuilder {
	b.args = append(b.args, v)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", sanitizeIdentifier(col), len(b.args)))
	return b
}

// SetIf assigns *v to col when v is non-nil.
func SetIf[T any](b *UpdateBuilder, col string, v *T) *UpdateBuilder {
	if v != nil {
		b.Set(col, *v)
	}
	return b
}

// Empty reports whether no assignment was added.
func (b *UpdateBuilder) Empty() bool { return len(b.sets) == 0 }

// Build returns "UPDATE ... SET ... WHERE id = $n RETURNING cols".
func (b *UpdateBuilder) Build(id int64, returning []string) (string, []any) {
	args := append(append(make([]any, 0, len(b.args)+1), b.args...), id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		sanitizeIdentifier(b.table), strings.Join(b.sets, ", "), sanitizeIdentifier("id"), len(args))
	if len(returning) > 0 {
		q += " RETURNING " + ColumnList(returning)
	}
	return q, args
}
