package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs
type commands struct {
	Serve   *ServeCommand
	Migrate *MigrateCommand
	Import  *ImportCommand
}

// buildParser constructs the go-flags parser with all subcommands registered
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "crime-analytics"
	parser.LongDescription = "Exploratory analytics API over crime and social-post datasets."

	cmds := &commands{
		Serve:   &ServeCommand{globals: &globals, version: version},
		Migrate: &MigrateCommand{globals: &globals},
		Import:  &ImportCommand{globals: &globals},
	}

	parser.AddCommand("serve", "Start the HTTP API", "Run migrations and start the analytics HTTP API.", cmds.Serve)
	parser.AddCommand("migrate", "Create dataset tables", "Create the tables of every catalog dataset.", cmds.Migrate)
	parser.AddCommand("import", "Load a CSV file into a dataset", "Load the rows of a CSV file into a dataset table. Header names select the fields.", cmds.Import)

	return parser, &globals, cmds
}

// Run is the main entry point using os.Args
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses args (or os.Args if nil) and executes the matched subcommand
func RunWithArgs(version string, args []string) error {
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("crime-analytics %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok && flagsErr.Type == goflags.ErrHelp {
			return nil
		}
		return err
	}

	return nil
}
