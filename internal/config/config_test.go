package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_Embedded(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)

	assert.Equal(t, []string{"crimes_2020", "tweets_2020"}, c.Names())

	crimes, ok := c.Dataset("crimes_2020")
	require.True(t, ok)
	assert.True(t, crimes.IsNumeric("Hour"))
	assert.True(t, crimes.IsCategorical("Location Description"))
	assert.False(t, crimes.IsNumeric("Category"))
	assert.False(t, crimes.IsCategorical("Radius"))

	f, ok := crimes.Field("Arrest")
	require.True(t, ok)
	assert.Equal(t, FieldFlag, f.Type)

	_, ok = c.Dataset("users")
	assert.False(t, ok)
}

func TestParseCatalog_DefaultsTableToName(t *testing.T) {
	c, err := ParseCatalog([]byte(`
datasets:
  - name: events
    fields:
      - {name: Hour, type: integer, numeric: true}
`))
	require.NoError(t, err)

	d, ok := c.Dataset("events")
	require.True(t, ok)
	assert.Equal(t, "events", d.Table)
}

func TestParseCatalog_Rejects(t *testing.T) {
	tests := map[string]string{
		"no datasets":     `datasets: []`,
		"duplicate":       "datasets:\n  - {name: a}\n  - {name: a}",
		"bad table":       "datasets:\n  - {name: a, table: \"a; DROP\"}",
		"unknown type":    "datasets:\n  - name: a\n    fields:\n      - {name: x, type: blob}",
		"numeric text":    "datasets:\n  - name: a\n    fields:\n      - {name: x, type: text, numeric: true}",
		"quoted field":    "datasets:\n  - name: a\n    fields:\n      - {name: 'x\"y', type: text}",
		"duplicate field": "datasets:\n  - name: a\n    fields:\n      - {name: x, type: text}\n      - {name: x, type: real}",
		"invalid yaml":    "datasets: [",
	}
	for name, doc := range tests {
		_, err := ParseCatalog([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "JWT_SECRET", "RATE_LIMIT", "DATASETS_FILE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "./data/crimes.db", cfg.DSN())
	assert.Equal(t, 120, cfg.RateLimit)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoad_PostgresDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/crime_db?sslmode=disable")
	t.Setenv("RATE_LIMIT", "not-a-number")

	cfg := Load()
	assert.Equal(t, "postgres://localhost/crime_db?sslmode=disable", cfg.DSN())
	assert.Equal(t, 120, cfg.RateLimit)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CRIME_ANALYTICS_TEST_VAR=from-file\n"), 0o600))
	t.Setenv("CRIME_ANALYTICS_TEST_VAR", "")
	os.Unsetenv("CRIME_ANALYTICS_TEST_VAR")

	require.NoError(t, LoadEnvFiles(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("CRIME_ANALYTICS_TEST_VAR"))
}
