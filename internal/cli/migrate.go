package cli

import (
	"context"
	"fmt"
)

// Execute implements the go-flags Commander interface for MigrateCommand
func (c *MigrateCommand) Execute(args []string) error {
	env, err := c.globals.load()
	if err != nil {
		return err
	}

	db, _, err := env.openDatabase(context.Background())
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Migrated %d datasets\n", len(env.catalog.Datasets))
	return nil
}
