package repository

import (
	"strings"

	"github.com/jengzang/crime-analytics-go/internal/database"
	"github.com/jengzang/crime-analytics-go/internal/filter"
)

// whereBuilder renders predicates as SQL conditions with bound arguments
type whereBuilder struct {
	dialect    database.Dialect
	conditions []string
	args       []interface{}
}

func newWhereBuilder(dialect database.Dialect) *whereBuilder {
	return &whereBuilder{dialect: dialect}
}

func (b *whereBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return b.dialect.Placeholder(len(b.args))
}

func (b *whereBuilder) predicate(p filter.Predicate) *whereBuilder {
	if p.IsEmpty() {
		return b
	}
	for _, c := range p.All {
		b.conditions = append(b.conditions, b.constraint(c))
	}
	if len(p.Any) > 0 {
		alternatives := make([]string, 0, len(p.Any))
		for _, c := range p.Any {
			alternatives = append(alternatives, b.constraint(c))
		}
		b.conditions = append(b.conditions, "("+strings.Join(alternatives, " OR ")+")")
	}
	return b
}

func (b *whereBuilder) notNull(fields ...string) *whereBuilder {
	for _, f := range fields {
		b.conditions = append(b.conditions, b.dialect.QuoteIdent(f)+" IS NOT NULL")
	}
	return b
}

func (b *whereBuilder) constraint(c filter.Constraint) string {
	column := b.dialect.QuoteIdent(c.Field)
	switch c.Op {
	case filter.OpEq:
		return column + " = " + b.arg(c.Value)
	case filter.OpIn:
		if len(c.Values) == 0 {
			return "1 = 0"
		}
		placeholders := make([]string, len(c.Values))
		for i, v := range c.Values {
			placeholders[i] = b.arg(v)
		}
		return column + " IN (" + strings.Join(placeholders, ", ") + ")"
	case filter.OpBetween:
		return column + " BETWEEN " + b.arg(c.Lower) + " AND " + b.arg(c.Upper)
	default:
		return "1 = 0"
	}
}

// clause returns the WHERE clause, or an empty string without conditions
func (b *whereBuilder) clause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conditions, " AND ")
}
