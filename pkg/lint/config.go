package lint

import "github.com/apistyle/apilint/pkg/core"

// Config controls which rules run, their severity, and their options.
// Keys may be rule IDs ("MN01") or convention names
// ("money-amount-format"); an ID entry wins when both are present.
type Config struct {
	// DisabledRules contains rules to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]Severity

	// RuleOptions contains rule-specific options
	RuleOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// NewConfigFromLint builds a runtime Config from the user-facing
// configuration file fragment. Unknown severity strings are ignored;
// validation happens at config load.
func NewConfigFromLint(lc *core.LintConfig) *Config {
	cfg := NewConfig()
	if lc == nil {
		return cfg
	}
	for _, key := range lc.Disabled {
		cfg.Disable(key)
	}
	for key, sevName := range lc.Severity {
		if sev, ok := core.ParseSeverity(sevName); ok {
			cfg.SetSeverity(key, sev)
		}
	}
	for key, opts := range lc.Rules {
		cfg.SetRuleOptions(key, opts)
	}
	return cfg
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(key string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[key]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(key string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[key]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the options configured for a rule, or nil.
func (c *Config) GetRuleOptions(key string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[key]
}

// Disable disables a rule by ID or name.
func (c *Config) Disable(key string) *Config {
	c.DisabledRules[key] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(key string, severity Severity) *Config {
	c.SeverityOverrides[key] = severity
	return c
}

// SetRuleOptions sets rule-specific options.
func (c *Config) SetRuleOptions(key string, opts map[string]any) *Config {
	c.RuleOptions[key] = opts
	return c
}
