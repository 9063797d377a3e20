package config

import (
	"fmt"
)

// validOutputs are the accepted output format names.
var validOutputs = map[string]bool{
	"auto":     true,
	"table":    true,
	"text":     true,
	"json":     true,
	"csv":      true,
	"md":       true,
	"markdown": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OutputFormat != "" && !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q\nHint: use one of auto, table, json, csv, md", c.OutputFormat)
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q\nHint: use one of debug, info, warn, error", c.LogLevel)
	}

	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format %q\nHint: use text or json", c.LogFormat)
	}

	return nil
}
