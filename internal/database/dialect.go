package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jengzang/crime-analytics-go/internal/config"
)

// RecordIDColumn is the surrogate key added to every dataset table. Its
// order is the insertion order of the records.
const RecordIDColumn = "record_id"

// Dialect captures the SQL differences between supported databases
type Dialect interface {
	Name() string
	DriverName() string
	Placeholder(n int) string
	QuoteIdent(name string) string
	ColumnType(t config.FieldType) string
	PrimaryKey() string
}

// DialectFor returns the dialect of a configured driver
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "", "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	case "postgres", "postgresql":
		return postgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string                  { return "sqlite" }
func (sqliteDialect) DriverName() string            { return "sqlite" }
func (sqliteDialect) Placeholder(int) string        { return "?" }
func (sqliteDialect) QuoteIdent(name string) string { return quoteIdent(name) }
func (sqliteDialect) PrimaryKey() string {
	return quoteIdent(RecordIDColumn) + " INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (sqliteDialect) ColumnType(t config.FieldType) string {
	switch t {
	case config.FieldInteger, config.FieldFlag:
		return "INTEGER"
	case config.FieldReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string                  { return "postgres" }
func (postgresDialect) DriverName() string            { return "postgres" }
func (postgresDialect) Placeholder(n int) string      { return "$" + strconv.Itoa(n) }
func (postgresDialect) QuoteIdent(name string) string { return quoteIdent(name) }
func (postgresDialect) PrimaryKey() string {
	return quoteIdent(RecordIDColumn) + " BIGSERIAL PRIMARY KEY"
}

func (postgresDialect) ColumnType(t config.FieldType) string {
	switch t {
	case config.FieldInteger, config.FieldFlag:
		return "BIGINT"
	case config.FieldReal:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}
