package repository

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jengzang/crime-analytics-go/internal/config"
	"github.com/jengzang/crime-analytics-go/internal/database"
)

// ImportCSV loads CSV rows into the dataset table inside one transaction.
// Header names are matched against catalog fields; other columns are
// skipped. Empty or unparsable cells are stored as NULL.
func (r *EventRepository) ImportCSV(ctx context.Context, d *config.Dataset, src io.Reader) (int, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	type column struct {
		index int
		field config.Field
	}
	var columns []column
	for i, h := range headers {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		if f, ok := d.Field(name); ok {
			columns = append(columns, column{index: i, field: f})
		}
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("CSV header matches no field of dataset %s", d.Name)
	}

	names := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		names[i] = r.dialect.QuoteIdent(c.field.Name)
		placeholders[i] = r.dialect.Placeholder(i + 1)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.table(d), strings.Join(names, ", "), strings.Join(placeholders, ", "))

	inserted := 0
	err = database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insert)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		line := 1
		for {
			row, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			line++
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}

			args := make([]interface{}, len(columns))
			for i, c := range columns {
				if c.index < len(row) {
					args[i] = convertCell(c.field.Type, row[c.index])
				}
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("line %d: failed to insert: %w", line, err)
			}
			inserted++
		}
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// convertCell parses a CSV cell for a field type, returning nil for NULL
func convertCell(t config.FieldType, raw string) interface{} {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	switch t {
	case config.FieldInteger:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int64(f)) {
			return int64(f)
		}
		return nil
	case config.FieldReal:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
		return nil
	case config.FieldFlag:
		switch strings.ToLower(raw) {
		case "true", "1", "1.0", "yes":
			return int64(1)
		case "false", "0", "0.0", "no":
			return int64(0)
		}
		return nil
	default:
		return raw
	}
}
