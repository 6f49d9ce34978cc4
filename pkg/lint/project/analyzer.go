package project

import (
	"github.com/apistyle/apilint/pkg/lint"
)

// Analyzer runs project-level rules against an indexed context.
// It shares the lint.Config disable and severity machinery, so a
// project rule is disabled the same way a per-document rule is.
type Analyzer struct {
	config *lint.Config
}

// NewAnalyzer creates a project analyzer with optional configuration.
func NewAnalyzer(config *lint.Config) *Analyzer {
	if config == nil {
		config = lint.NewConfig()
	}
	return &Analyzer{config: config}
}

// Analyze runs all enabled project rules against the context. Findings
// come out in rule ID order, each rule's findings in document order.
func (a *Analyzer) Analyze(ctx *Context) []Finding {
	if ctx == nil {
		return nil
	}

	var findings []Finding
	for _, rule := range GetAll() {
		if a.config.IsDisabled(rule.ID) || a.config.IsDisabled(rule.Name) {
			continue
		}

		opts := a.config.GetRuleOptions(rule.ID)
		if opts == nil {
			opts = a.config.GetRuleOptions(rule.Name)
		}

		fs := rule.Check(ctx, opts)
		for i := range fs {
			fs[i].Severity = a.config.GetSeverity(rule.Name, fs[i].Severity)
			fs[i].Severity = a.config.GetSeverity(rule.ID, fs[i].Severity)
		}
		findings = append(findings, fs...)
	}
	return findings
}
