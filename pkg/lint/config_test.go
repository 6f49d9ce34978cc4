package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apistyle/apilint/pkg/core"
	"github.com/apistyle/apilint/pkg/lint"
)

func TestNewConfigFromLint(t *testing.T) {
	lc := &core.LintConfig{
		Disabled: []string{"MN02", "reference-field-naming"},
		Severity: map[string]string{
			"GN01": "should",
			"AD01": "nonsense", // ignored
		},
		Rules: map[string]core.RuleOptions{
			"MN01": {"decimal_formats": []string{"decimal128"}},
		},
	}

	cfg := lint.NewConfigFromLint(lc)

	assert.True(t, cfg.IsDisabled("MN02"))
	assert.True(t, cfg.IsDisabled("reference-field-naming"))
	assert.False(t, cfg.IsDisabled("MN01"))

	assert.Equal(t, lint.SeverityShould, cfg.GetSeverity("GN01", lint.SeverityMust))
	assert.Equal(t, lint.SeverityMust, cfg.GetSeverity("AD01", lint.SeverityMust))

	opts := cfg.GetRuleOptions("MN01")
	assert.Equal(t, []string{"decimal128"}, opts["decimal_formats"])
}

func TestNewConfigFromLintNil(t *testing.T) {
	cfg := lint.NewConfigFromLint(nil)
	assert.False(t, cfg.IsDisabled("MN01"))
	assert.Nil(t, cfg.GetRuleOptions("MN01"))
}

func TestNilConfigIsSafe(t *testing.T) {
	var cfg *lint.Config
	assert.False(t, cfg.IsDisabled("MN01"))
	assert.Equal(t, lint.SeverityShould, cfg.GetSeverity("MN01", lint.SeverityShould))
	assert.Nil(t, cfg.GetRuleOptions("MN01"))
}

func TestConfigChaining(t *testing.T) {
	cfg := lint.NewConfig().
		Disable("MN01").
		SetSeverity("GN01", lint.SeverityShould).
		SetRuleOptions("RF01", map[string]any{"annotation": "x-ref"})

	assert.True(t, cfg.IsDisabled("MN01"))
	assert.Equal(t, lint.SeverityShould, cfg.GetSeverity("GN01", lint.SeverityMust))
	assert.Equal(t, "x-ref", cfg.GetRuleOptions("RF01")["annotation"])
}
