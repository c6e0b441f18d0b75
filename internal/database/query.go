package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Query is an immutable value describing filters, ordering, and pagination
// for the simple (non-planned) lookup paths: enrichment follow-ups, tenant
// config, aux tables. The fieldset-planned lot query does not go through
// Query; it renders its own SQL.
type Query struct {
	conditions []condition
	orders     []string
	limit      int
	offset     int
}

type condition struct {
	sql  string
	args []any
}

// NewQuery creates an empty Query.
func NewQuery() Query {
	return Query{}
}

// Equal adds a field = value filter.
func (q Query) Equal(field string, value any) Query {
	q.conditions = append(q.conditions, condition{sql: fmt.Sprintf("%s = ?", field), args: []any{value}})
	return q
}

// NotEqual adds a field != value filter.
func (q Query) NotEqual(field string, value any) Query {
	q.conditions = append(q.conditions, condition{sql: fmt.Sprintf("%s != ?", field), args: []any{value}})
	return q
}

// In adds a field IN (values) filter.
func (q Query) In(field string, values any) Query {
	q.conditions = append(q.conditions, condition{sql: fmt.Sprintf("%s IN ?", field), args: []any{values}})
	return q
}

// Where adds a raw SQL predicate with positional arguments.
func (q Query) Where(sql string, args ...any) Query {
	q.conditions = append(q.conditions, condition{sql: sql, args: args})
	return q
}

// OrderAsc adds ascending ordering on a field.
func (q Query) OrderAsc(field string) Query {
	q.orders = append(q.orders, field+" ASC")
	return q
}

// OrderDesc adds descending ordering on a field.
func (q Query) OrderDesc(field string) Query {
	q.orders = append(q.orders, field+" DESC")
	return q
}

// Limit sets the result limit (0 means no limit).
func (q Query) Limit(limit int) Query {
	q.limit = limit
	return q
}

// Offset sets the result offset.
func (q Query) Offset(offset int) Query {
	q.offset = offset
	return q
}

// Apply applies the query to a GORM session.
func (q Query) Apply(db *gorm.DB) *gorm.DB {
	for _, c := range q.conditions {
		db = db.Where(c.sql, c.args...)
	}
	for _, o := range q.orders {
		db = db.Order(o)
	}
	if q.limit > 0 {
		db = db.Limit(q.limit)
	}
	if q.offset > 0 {
		db = db.Offset(q.offset)
	}
	return db
}

// ApplyConditions applies only the WHERE conditions, for COUNT queries.
func (q Query) ApplyConditions(db *gorm.DB) *gorm.DB {
	for _, c := range q.conditions {
		db = db.Where(c.sql, c.args...)
	}
	return db
}
