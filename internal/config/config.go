package config

// Config holds app configuration
type Config struct {
	InputFile  string `mapstructure:"input"`
	OutputFile string `mapstructure:"output"`

	// Lump is the name of a lump to look up after loading.
	// Later entries win when a name appears more than once.
	Lump string `mapstructure:"lump"`

	// Workers is how many directory entries are read at once (1 = sequential)
	Workers int `mapstructure:"workers"`

	DryRun       bool   `mapstructure:"dry_run"`
	LogLevel     string `mapstructure:"log_level"`
	LogOutputDir string `mapstructure:"log_output_dir"`
}
