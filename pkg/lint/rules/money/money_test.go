package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apistyle/apilint/pkg/lint"
	_ "github.com/apistyle/apilint/pkg/lint/rules" // register rules
	"github.com/apistyle/apilint/pkg/schema"
)

// Helper to run a check and filter findings by rule ID
func runRule(t *testing.T, source string, ruleID string) []lint.Finding {
	t.Helper()
	doc, err := schema.Parse("test.yaml", []byte(source))
	require.NoError(t, err)

	checker := lint.NewChecker(lint.NewConfig())
	findings, err := checker.Check(doc)
	require.NoError(t, err)

	var filtered []lint.Finding
	for _, f := range findings {
		if f.RuleID == ruleID {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func TestMN01_AmountFormat(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantFinding bool
	}{
		{
			name: "double format",
			source: `
properties:
  amount: {type: number, format: double}
`,
			wantFinding: true,
		},
		{
			name: "float format",
			source: `
properties:
  amount: {type: number, format: float}
`,
			wantFinding: true,
		},
		{
			name: "bare number without format",
			source: `
properties:
  amount: {type: number}
`,
			wantFinding: true,
		},
		{
			name: "decimal format",
			source: `
properties:
  amount: {type: number, format: decimal}
`,
			wantFinding: false,
		},
		{
			name: "string amount",
			source: `
properties:
  amount: {type: string, format: decimal}
`,
			wantFinding: false,
		},
		{
			name: "integer amount",
			source: `
properties:
  amount: {type: integer}
`,
			wantFinding: false,
		},
		{
			name: "other property named like a float",
			source: `
properties:
  altitude: {type: number, format: double}
`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.source, "MN01")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected MN01 finding")
			} else {
				assert.Empty(t, findings, "unexpected MN01 finding")
			}
		})
	}
}

func TestMN01_FindingShape(t *testing.T) {
	findings := runRule(t, `
properties:
  amount: {type: number, format: double}
`, "MN01")

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "money-amount-format", f.Rule)
	assert.Equal(t, lint.KindConvention, f.Kind)
	assert.Equal(t, lint.SeverityMust, f.Severity)
	assert.Equal(t, "/properties/amount", f.Path)
	assert.Contains(t, f.Message, "double")
}

func TestMN01_ExtraDecimalFormats(t *testing.T) {
	source := `
properties:
  amount: {type: number, format: decimal128}
  currency: {type: string}
`
	doc, err := schema.Parse("test.yaml", []byte(source))
	require.NoError(t, err)

	// Without the option the unknown format is a violation.
	findings, err := lint.NewChecker(lint.NewConfig()).Check(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, findings)

	cfg := lint.NewConfig()
	cfg.SetRuleOptions("MN01", map[string]any{"decimal_formats": []string{"decimal128"}})
	findings, err = lint.NewChecker(cfg).Check(doc)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestMN02_CurrencyMissing(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantFinding bool
	}{
		{
			name: "amount without currency",
			source: `
properties:
  amount: {type: string, format: decimal}
`,
			wantFinding: true,
		},
		{
			name: "amount with currency sibling",
			source: `
properties:
  amount: {type: string, format: decimal}
  currency: {type: string}
`,
			wantFinding: false,
		},
		{
			name: "no amount at all",
			source: `
properties:
  total: {type: string}
`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.source, "MN02")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected MN02 finding")
			} else {
				assert.Empty(t, findings, "unexpected MN02 finding")
			}
		})
	}
}

func TestMN02_MessageNamesCurrency(t *testing.T) {
	findings := runRule(t, `
properties:
  amount: {type: string, format: decimal}
`, "MN02")

	require.Len(t, findings, 1)
	assert.Equal(t, "/properties/amount", findings[0].Path)
	assert.Contains(t, findings[0].Message, "currency")
}

func TestMN03_CurrencyFormat(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantFinding bool
	}{
		{
			name: "integer currency",
			source: `
properties:
  currency: {type: integer}
`,
			wantFinding: true,
		},
		{
			name: "plain string currency",
			source: `
properties:
  currency: {type: string}
`,
			wantFinding: false,
		},
		{
			name: "string with exact length facets",
			source: `
properties:
  currency: {type: string, minLength: 3, maxLength: 3}
`,
			wantFinding: false,
		},
		{
			name: "string too short for a code",
			source: `
properties:
  currency: {type: string, maxLength: 2}
`,
			wantFinding: true,
		},
		{
			name: "undeclared type",
			source: `
properties:
  currency: {example: EUR}
`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.source, "MN03")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected MN03 finding")
			} else {
				assert.Empty(t, findings, "unexpected MN03 finding")
			}
		})
	}
}
