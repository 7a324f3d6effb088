package logger

import "fmt"

// Accepted values for Config.Level and Config.Format.
var (
	levelNames  = []string{"trace", "debug", "info", "warn", "error", "fatal"}
	formatNames = []string{"json", "console"}
)

// Config controls how loggers write.
type Config struct {
	// ServiceName tags every entry so aggregated streams from several
	// services stay attributable. Defaults to "authflow".
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`

	// Level is the minimum severity written: trace, debug, info, warn,
	// error, or fatal. Defaults to info.
	Level string `yaml:"level" mapstructure:"level"`

	// Format selects json (machine-readable, for collectors) or console
	// (human-readable). Defaults to console.
	Format string `yaml:"format" mapstructure:"format"`

	// Output routes entries to stdout (default) or stderr.
	Output string `yaml:"output" mapstructure:"output"`

	// NoColor strips ANSI colors from console output.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`

	// Caller appends the file:line of the logging call site.
	Caller bool `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults fills unset fields in place.
func (c *Config) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "authflow"
	}
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}

// Validate rejects level and format values that New would otherwise
// silently coerce.
func (c *Config) Validate() error {
	if !nameIn(c.Level, levelNames) {
		return fmt.Errorf("logging.level %q not one of %v", c.Level, levelNames)
	}
	if !nameIn(c.Format, formatNames) {
		return fmt.Errorf("logging.format %q not one of %v", c.Format, formatNames)
	}
	return nil
}

func nameIn(v string, names []string) bool {
	for _, n := range names {
		if v == n {
			return true
		}
	}
	return false
}
