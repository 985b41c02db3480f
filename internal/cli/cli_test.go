package cli

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// useTempDatabase points the sqlite configuration at a fresh file
func useTempDatabase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "crimes.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("DATASETS_FILE", "")
	return dbPath
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func TestVersionFlag(t *testing.T) {
	var err error
	output := captureStdout(t, func() {
		err = RunWithArgs("0.1.0-test", []string{"--version"})
	})

	assert.NoError(t, err)
	assert.Equal(t, "crime-analytics 0.1.0-test", strings.TrimSpace(output))
}

func TestServeSubcommandRegistered(t *testing.T) {
	parser, _, cmds := buildParser("test")
	cmd := parser.Find("serve")
	require.NotNil(t, cmd)
	assert.NotNil(t, cmd.FindOptionByLongName("port"))
	assert.NotNil(t, cmds.Serve)
}

func TestMigrateCommand(t *testing.T) {
	dbPath := useTempDatabase(t)

	var err error
	output := captureStdout(t, func() {
		err = RunWithArgs("test", []string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "migrate"})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Migrated 2 datasets")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'tweets_2020'`).Scan(&name))
	assert.Equal(t, "tweets_2020", name)
}

func TestImportCommand(t *testing.T) {
	dbPath := useTempDatabase(t)

	csvPath := filepath.Join(t.TempDir(), "tweets.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Date,likeCount\n2020-03-01 10:00:00,4\n2020-03-02 10:00:00,7\n"), 0o644))

	var err error
	output := captureStdout(t, func() {
		err = RunWithArgs("test", []string{"import", "--dataset", "tweets_2020", csvPath})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Imported 2 rows into tweets_2020")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var sum int
	require.NoError(t, db.QueryRow(`SELECT SUM("likeCount") FROM tweets_2020`).Scan(&sum))
	assert.Equal(t, 11, sum)
}

func TestImportCommand_Errors(t *testing.T) {
	useTempDatabase(t)

	err := RunWithArgs("test", []string{"import", "--dataset", "crimes_1999", "rows.csv"})
	assert.ErrorContains(t, err, "unknown dataset")

	err = RunWithArgs("test", []string{"import", "--dataset", "crimes_2020", filepath.Join(t.TempDir(), "missing.csv")})
	assert.Error(t, err)

	err = RunWithArgs("test", []string{"import", "rows.csv"})
	assert.Error(t, err)
}
