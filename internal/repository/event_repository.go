package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/crime-analytics-go/internal/config"
	"github.com/jengzang/crime-analytics-go/internal/database"
	"github.com/jengzang/crime-analytics-go/internal/filter"
	"github.com/jengzang/crime-analytics-go/internal/models"
)

// Fields read by the cluster query
const (
	FieldCluster     = "cluster"
	FieldLatitude    = "Latitude"
	FieldLongitude   = "Longitude"
	FieldCountCrimes = "count_crimes"
)

// EventRepository executes compiled predicates against dataset tables
type EventRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB, dialect database.Dialect) *EventRepository {
	return &EventRepository{db: db, dialect: dialect}
}

func (r *EventRepository) table(d *config.Dataset) string {
	return r.dialect.QuoteIdent(d.Table)
}

func (r *EventRepository) orderByRecord() string {
	return " ORDER BY " + r.dialect.QuoteIdent(database.RecordIDColumn)
}

// Count returns the number of records matching p
func (r *EventRepository) Count(ctx context.Context, d *config.Dataset, p filter.Predicate) (int64, error) {
	where := newWhereBuilder(r.dialect).predicate(p)
	query := "SELECT COUNT(*) FROM " + r.table(d) + where.clause()

	var count int64
	if err := r.db.QueryRowContext(ctx, query, where.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", d.Name, err)
	}
	return count, nil
}

// Values returns the non-null values of field for records matching p, in
// insertion order. limit <= 0 means no limit.
func (r *EventRepository) Values(ctx context.Context, d *config.Dataset, p filter.Predicate, field string, limit int) ([]interface{}, error) {
	where := newWhereBuilder(r.dialect).predicate(p).notNull(field)
	query := "SELECT " + r.dialect.QuoteIdent(field) + " FROM " + r.table(d) + where.clause() + r.orderByRecord()
	if limit > 0 {
		query += " LIMIT " + where.arg(limit)
	}

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s values: %w", field, err)
	}
	defer rows.Close()

	var values []interface{}
	for rows.Next() {
		var v interface{}
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s value: %w", field, err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

// GroupCounts counts matching records per non-null value of field. Groups
// come back in order of their first record.
func (r *EventRepository) GroupCounts(ctx context.Context, d *config.Dataset, p filter.Predicate, field string) ([]models.CategoryCount, error) {
	column := r.dialect.QuoteIdent(field)
	where := newWhereBuilder(r.dialect).predicate(p).notNull(field)
	query := "SELECT " + column + ", COUNT(*) FROM " + r.table(d) + where.clause() +
		" GROUP BY " + column +
		" ORDER BY MIN(" + r.dialect.QuoteIdent(database.RecordIDColumn) + ")"

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group %s by %s: %w", d.Name, field, err)
	}
	defer rows.Close()

	counts := []models.CategoryCount{}
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Value, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan group count: %w", err)
		}
		if b, ok := c.Value.([]byte); ok {
			c.Value = string(b)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// CategoryLabels returns the ranked category labels of records matching p
func (r *EventRepository) CategoryLabels(ctx context.Context, d *config.Dataset, p filter.Predicate) ([]models.RankedLabels, error) {
	columns := ""
	for i, level := range filter.CategoryLevels {
		if i > 0 {
			columns += ", "
		}
		columns += r.dialect.QuoteIdent(level)
	}

	where := newWhereBuilder(r.dialect).predicate(p)
	query := "SELECT " + columns + " FROM " + r.table(d) + where.clause() + r.orderByRecord()

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category levels: %w", err)
	}
	defer rows.Close()

	var records []models.RankedLabels
	for rows.Next() {
		var levels [3]sql.NullString
		if err := rows.Scan(&levels[0], &levels[1], &levels[2]); err != nil {
			return nil, fmt.Errorf("failed to scan category levels: %w", err)
		}

		var labels models.RankedLabels
		for i, l := range levels {
			if l.Valid {
				s := l.String
				labels[i] = &s
			}
		}
		records = append(records, labels)
	}

	return records, rows.Err()
}

// ClusterMembers returns the located, clustered records matching p
func (r *EventRepository) ClusterMembers(ctx context.Context, d *config.Dataset, p filter.Predicate) ([]models.ClusterMember, error) {
	where := newWhereBuilder(r.dialect).predicate(p).notNull(FieldCluster, FieldLatitude, FieldLongitude)
	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s%s%s",
		r.dialect.QuoteIdent(FieldCluster),
		r.dialect.QuoteIdent(FieldLatitude),
		r.dialect.QuoteIdent(FieldLongitude),
		r.dialect.QuoteIdent(FieldCountCrimes),
		r.table(d), where.clause(), r.orderByRecord())

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cluster members: %w", err)
	}
	defer rows.Close()

	var members []models.ClusterMember
	for rows.Next() {
		var m models.ClusterMember
		var countCrimes sql.NullInt64
		if err := rows.Scan(&m.Cluster, &m.Latitude, &m.Longitude, &countCrimes); err != nil {
			return nil, fmt.Errorf("failed to scan cluster member: %w", err)
		}
		m.CountCrimes = countCrimes.Int64
		members = append(members, m)
	}

	return members, rows.Err()
}

// Pairs returns (x, y) values of records matching p where both are non-null
func (r *EventRepository) Pairs(ctx context.Context, d *config.Dataset, p filter.Predicate, x, y string, limit int) ([][2]interface{}, error) {
	where := newWhereBuilder(r.dialect).predicate(p).notNull(x, y)
	query := "SELECT " + r.dialect.QuoteIdent(x) + ", " + r.dialect.QuoteIdent(y) +
		" FROM " + r.table(d) + where.clause() + r.orderByRecord()
	if limit > 0 {
		query += " LIMIT " + where.arg(limit)
	}

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s/%s pairs: %w", x, y, err)
	}
	defer rows.Close()

	var pairs [][2]interface{}
	for rows.Next() {
		var pair [2]interface{}
		if err := rows.Scan(&pair[0], &pair[1]); err != nil {
			return nil, fmt.Errorf("failed to scan pair: %w", err)
		}
		pairs = append(pairs, pair)
	}

	return pairs, rows.Err()
}
