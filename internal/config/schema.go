package config

// Config is the full configuration file schema.
type Config struct {
	Runner  RunnerConfig  `toml:"runner"`
	Logging LoggingConfig `toml:"logging"`
}

// RunnerConfig controls how jobs are selected and run.
type RunnerConfig struct {
	// Safe makes jobs addressable by fingerprint instead of UID.
	Safe bool `toml:"safe"`
	// EnvFile is an env-style file loaded as the jobs' environment.
	EnvFile string `toml:"env_file"`
	// NoColor disables terminal styling in menus and errors.
	NoColor bool `toml:"no_color"`
}

// LoggingConfig mirrors logger.Config.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, text
	Output string `toml:"output"` // stdout, stderr, or a file path
}
