package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jengzang/crime-analytics-go/internal/repository"
)

// Execute implements the go-flags Commander interface for ImportCommand
func (c *ImportCommand) Execute(args []string) error {
	if c.Args.File == "" {
		return fmt.Errorf("a CSV file is required for import command")
	}

	env, err := c.globals.load()
	if err != nil {
		return err
	}
	d, ok := env.catalog.Dataset(c.Dataset)
	if !ok {
		return fmt.Errorf("unknown dataset %q", c.Dataset)
	}

	f, err := os.Open(c.Args.File)
	if err != nil {
		return fmt.Errorf("opening %s: %w", c.Args.File, err)
	}
	defer f.Close()

	ctx := context.Background()
	db, dialect, err := env.openDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := repository.NewEventRepository(db, dialect).ImportCSV(ctx, d, f)
	if err != nil {
		return fmt.Errorf("importing %s: %w", c.Args.File, err)
	}

	fmt.Printf("Imported %d rows into %s\n", n, d.Name)
	return nil
}
