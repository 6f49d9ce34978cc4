package core

// LintConfig holds rule configuration as it appears in apilint.yaml.
type LintConfig struct {
	// Rule IDs or convention names that never run.
	Disabled []string `koanf:"disabled"`

	// Per-rule severity overrides, keyed by ID or name. Values are the
	// severity keywords "must" and "should".
	Severity map[string]string `koanf:"severity"`

	// Per-rule option blocks, keyed by ID or name.
	Rules map[string]RuleOptions `koanf:"rules"`

	// Settings for the cross-document analysis pass.
	Project *ProjectRulesConfig `koanf:"project"`
}

// RuleOptions is one rule's option block, decoded as loose keys.
type RuleOptions map[string]any

// ProjectRulesConfig controls the cross-document analysis pass.
type ProjectRulesConfig struct {
	// Unset means enabled.
	Enabled *bool `koanf:"enabled"`
}

// IsEnabled reports whether cross-document rules should run. A nil
// config or nil flag counts as enabled.
func (c *ProjectRulesConfig) IsEnabled() bool {
	if c == nil || c.Enabled == nil {
		return true
	}
	return *c.Enabled
}
