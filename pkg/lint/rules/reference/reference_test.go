package reference_test

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

func TestRF01_ReferenceNaming(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantFinding bool
	}{
		{
			name: "misnamed reference",
			source: `
properties:
  order:
    type: string
    x-references: SalesOrder
`,
			wantFinding: true,
		},
		{
			name: "well named reference",
			source: `
properties:
  sales_order_id:
    type: string
    x-references: SalesOrder
`,
			wantFinding: false,
		},
		{
			name: "id suffix without annotation",
			source: `
properties:
  order_id:
    type: string
`,
			wantFinding: false,
		},
		{
			name: "space separated target",
			source: `
properties:
  sales_order_id:
    type: string
    x-references: Sales Order
`,
			wantFinding: false,
		},
		{
			name: "single word target",
			source: `
properties:
  customer_id:
    type: string
    x-references: Customer
`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.source, "RF01")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected RF01 finding")
			} else {
				assert.Empty(t, findings, "unexpected RF01 finding")
			}
		})
	}
}

func TestRF01_MessageNamesExpected(t *testing.T) {
	findings := runRule(t, `
properties:
  order:
    type: string
    x-references: SalesOrder
`, "RF01")

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "reference-field-naming", f.Rule)
	assert.Equal(t, lint.SeverityShould, f.Severity)
	assert.Equal(t, "/properties/order", f.Path)
	assert.Contains(t, f.Message, `"sales_order_id"`)
}

func TestRF01_CustomAnnotation(t *testing.T) {
	source := `
properties:
  order:
    type: string
    x-ref-type: SalesOrder
`
	doc, err := schema.Parse("test.yaml", []byte(source))
	require.NoError(t, err)

	// Default annotation key does not match, so nothing fires.
	findings, err := lint.NewChecker(lint.NewConfig()).Check(doc)
	require.NoError(t, err)
	assert.Empty(t, findings)

	cfg := lint.NewConfig()
	cfg.SetRuleOptions("RF01", map[string]any{"annotation": "x-ref-type"})
	findings, err = lint.NewChecker(cfg).Check(doc)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "RF01", findings[0].RuleID)
}
