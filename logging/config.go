package logging

// Config defines the structure for logging configuration in the project configuration file.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the LAZYSUITE_LOG_LEVEL environment variable.
	Level string `yaml:"level" json:"level" toml:"level"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	ReportCaller bool `yaml:"report_caller" json:"report_caller" toml:"report_caller"`

	// Format is "text" (default) or "json".
	Format string `yaml:"format" json:"format" toml:"format"`

	// Output controls when logs are sent to stderr.
	// Can be "auto" (default), "always", or "never".
	Output string `yaml:"output" json:"output" toml:"output"`
}
