package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/crime-analytics-go/internal/config"
)

func openTestDB(t *testing.T) (*sql.DB, Dialect) {
	t.Helper()
	db, dialect, err := Open(Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, dialect
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "?", d.Placeholder(3))
	assert.Equal(t, `"Community Area"`, d.QuoteIdent("Community Area"))

	d, err = DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, "$3", d.Placeholder(3))
	assert.Equal(t, "DOUBLE PRECISION", d.ColumnType(config.FieldReal))
	assert.Equal(t, `"a""b"`, d.QuoteIdent(`a"b`))

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}

func TestRunMigrations_CreatesCatalogTables(t *testing.T) {
	db, dialect := openTestDB(t)
	catalog, err := config.LoadCatalog("")
	require.NoError(t, err)
	ctx := context.Background()

	m := NewMigrationManager(db, dialect, catalog)
	require.NoError(t, m.RunMigrations(ctx))

	_, err = db.Exec(`INSERT INTO crimes_2020 ("Date", "Community Area", "Arrest") VALUES (?, ?, ?)`,
		"2020-01-01 10:00:00", 25, 1)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM crimes_2020`).Scan(&count))
	assert.Equal(t, 1, count)

	applied, err := m.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.True(t, applied["create_crimes_2020"])
	assert.True(t, applied["create_tweets_2020"])
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db, dialect := openTestDB(t)
	catalog, err := config.LoadCatalog("")
	require.NoError(t, err)
	ctx := context.Background()

	m := NewMigrationManager(db, dialect, catalog)
	require.NoError(t, m.RunMigrations(ctx))
	require.NoError(t, m.RunMigrations(ctx))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM migrations`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	_, err := db.Exec(`CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)

	err = Transaction(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO t (v) VALUES (1)`); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "postgres://***@db:5432/crime_db", redact("postgres://user:secret@db:5432/crime_db"))
	assert.Equal(t, "./data/crimes.db", redact("./data/crimes.db"))
}
