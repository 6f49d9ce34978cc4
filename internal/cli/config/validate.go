package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/apistyle/apilint/pkg/core"
)

// validOutputFormats are the accepted values for the output setting.
var validOutputFormats = map[string]bool{
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SchemasDir == "" {
		return fmt.Errorf("schemas_dir is required")
	}

	if c.OutputFormat != "" && !validOutputFormats[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (valid: auto, text, markdown, json)", c.OutputFormat)
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	if c.Lint != nil {
		for key, sev := range c.Lint.Severity {
			if _, ok := core.ParseSeverity(sev); !ok {
				return fmt.Errorf("invalid severity %q for rule %q (valid: must, should)", sev, key)
			}
		}
	}

	// Directory existence is checked separately so help and init work
	// without a schemas directory.
	return nil
}

// ValidateDirectories checks if required directories exist.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.SchemasDir); os.IsNotExist(err) {
		return fmt.Errorf("schemas directory does not exist: %s\nHint: Create the directory or use --schemas-dir to specify a different path", c.SchemasDir)
	}
	return nil
}
