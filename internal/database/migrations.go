package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/jengzang/crime-analytics-go/internal/config"
)

// Migration represents a database migration
type Migration struct {
	Name       string
	Statements []string
}

// MigrationManager creates the dataset tables described by the catalog
type MigrationManager struct {
	db      *sql.DB
	dialect Dialect
	catalog *config.Catalog
}

// indexedFields are filtered on by most requests
var indexedFields = []string{"Date", "Category"}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *sql.DB, dialect Dialect, catalog *config.Catalog) *MigrationManager {
	return &MigrationManager{
		db:      db,
		dialect: dialect,
		catalog: catalog,
	}
}

// InitMigrationsTable creates the migrations tracking table
func (m *MigrationManager) InitMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// GetAppliedMigrations returns the names of applied migrations
func (m *MigrationManager) GetAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT name FROM migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan migration name: %w", err)
		}
		applied[name] = true
	}

	return applied, rows.Err()
}

// Migrations builds one migration per catalog dataset
func (m *MigrationManager) Migrations() []Migration {
	migrations := make([]Migration, 0, len(m.catalog.Datasets))
	for _, d := range m.catalog.Datasets {
		migrations = append(migrations, Migration{
			Name:       "create_" + d.Table,
			Statements: m.createTable(d),
		})
	}
	return migrations
}

func (m *MigrationManager) createTable(d *config.Dataset) []string {
	table := m.dialect.QuoteIdent(d.Table)

	columns := []string{m.dialect.PrimaryKey()}
	for _, f := range d.Fields {
		columns = append(columns, m.dialect.QuoteIdent(f.Name)+" "+m.dialect.ColumnType(f.Type))
	}

	statements := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", table, strings.Join(columns, ",\n\t")),
	}
	for _, name := range indexedFields {
		if _, ok := d.Field(name); !ok {
			continue
		}
		index := m.dialect.QuoteIdent(fmt.Sprintf("idx_%s_%s", d.Table, strings.ToLower(name)))
		statements = append(statements, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			index, table, m.dialect.QuoteIdent(name)))
	}
	return statements
}

// ApplyMigration applies a single migration
func (m *MigrationManager) ApplyMigration(ctx context.Context, migration Migration) error {
	err := Transaction(ctx, m.db, func(tx *sql.Tx) error {
		for _, stmt := range migration.Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", migration.Name, err)
			}
		}

		insert := "INSERT INTO migrations (name) VALUES (" + m.dialect.Placeholder(1) + ")"
		if _, err := tx.ExecContext(ctx, insert, migration.Name); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Applied migration %s", migration.Name)
	return nil
}

// RunMigrations runs all pending migrations
func (m *MigrationManager) RunMigrations(ctx context.Context) error {
	if err := m.InitMigrationsTable(ctx); err != nil {
		return err
	}

	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	for _, migration := range m.Migrations() {
		if applied[migration.Name] {
			log.Printf("Skipping already applied migration %s", migration.Name)
			continue
		}

		if err := m.ApplyMigration(ctx, migration); err != nil {
			return err
		}
	}

	log.Println("All migrations applied successfully")
	return nil
}
