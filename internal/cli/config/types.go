// Package config provides configuration management for the apilint CLI.
//
// This package extends the shared configuration types from pkg/core
// with CLI-specific fields and functionality. The shared types are
// defined in pkg/core and re-exported here via type aliases for
// convenience.
package config

import (
	"github.com/apistyle/apilint/pkg/core"
)

// LintConfig is an alias for the shared lint configuration.
// This allows CLI code to use config.LintConfig without importing pkg/core.
type LintConfig = core.LintConfig

// RuleOptions is an alias for the shared rule options type.
// This allows CLI code to use config.RuleOptions without importing pkg/core.
type RuleOptions = core.RuleOptions

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// DefaultServerConfig returns a ServerConfig with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host: "127.0.0.1",
		Port: 8765,
	}
}

// GetServerConfig returns the server config with defaults applied for
// any unset values.
func (c *Config) GetServerConfig() *ServerConfig {
	if c.Server == nil {
		return DefaultServerConfig()
	}
	srv := c.Server
	if srv.Host == "" {
		srv.Host = "127.0.0.1"
	}
	if srv.Port == 0 {
		srv.Port = 8765
	}
	return srv
}

// WatchConfig holds configuration for watch mode.
type WatchConfig struct {
	// DebounceMS is how long to wait after the last change before
	// re-checking, in milliseconds.
	DebounceMS int `koanf:"debounce_ms"`
}

// GetWatchConfig returns the watch config with defaults applied.
func (c *Config) GetWatchConfig() *WatchConfig {
	if c.Watch == nil {
		return &WatchConfig{DebounceMS: DefaultDebounceMS}
	}
	w := c.Watch
	if w.DebounceMS <= 0 {
		w.DebounceMS = DefaultDebounceMS
	}
	return w
}

// Config holds all CLI configuration options.
type Config struct {
	SchemasDir   string        `koanf:"schemas_dir"`
	Extensions   []string      `koanf:"extensions"`
	RulesDir     string        `koanf:"rules_dir"`
	StatePath    string        `koanf:"state_path"`
	Verbose      bool          `koanf:"verbose"`
	NoColor      bool          `koanf:"no_color"`
	OutputFormat string        `koanf:"output"`
	DocsURL      string        `koanf:"docs_url"`
	Lint         *LintConfig   `koanf:"lint"`
	Server       *ServerConfig `koanf:"server"`
	Watch        *WatchConfig  `koanf:"watch"`

	// ProjectRoot is computed at load time, never read from file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultSchemasDir = "schemas"
	DefaultRulesDir   = "rules"
	DefaultStateFile  = ".apilint/state.db"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultDebounceMS = 100
)
