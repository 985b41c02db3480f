package cli

// GlobalFlags holds flags available to all subcommands
type GlobalFlags struct {
	EnvFile  string `long:"env-file" description:"Path to a .env file" default:".env"`
	Datasets string `long:"datasets" description:"Dataset catalog YAML (defaults to DATASETS_FILE or the built-in catalog)"`
	Version  bool   `long:"version" description:"Show version and exit"`
}

// ServeCommand starts the HTTP API
type ServeCommand struct {
	Port string `long:"port" description:"Listen address, overrides PORT"`

	globals *GlobalFlags
	version string
}

// MigrateCommand creates the dataset tables
type MigrateCommand struct {
	globals *GlobalFlags
}

// ImportCommand loads a CSV file into a dataset table
type ImportCommand struct {
	Dataset string `long:"dataset" description:"Target dataset" required:"true"`
	Args    struct {
		File string `positional-arg-name:"FILE" description:"CSV file with a header row"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
}
