package consistency_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apistyle/apilint/pkg/lint"
	"github.com/apistyle/apilint/pkg/lint/project"
	_ "github.com/apistyle/apilint/pkg/lint/project/rules" // register rules
	"github.com/apistyle/apilint/pkg/schema"
)

func buildContext(t *testing.T, docs map[string]string) *project.Context {
	t.Helper()

	// Deterministic document order, like LoadDir produces.
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	parsed := make([]*schema.Document, 0, len(names))
	for _, name := range names {
		doc, err := schema.Parse(name, []byte(docs[name]))
		require.NoError(t, err)
		parsed = append(parsed, doc)
	}
	return project.NewContext(parsed, "")
}

func analyze(t *testing.T, docs map[string]string, ruleID string) []project.Finding {
	t.Helper()
	findings := project.NewAnalyzer(lint.NewConfig()).Analyze(buildContext(t, docs))

	var filtered []project.Finding
	for _, f := range findings {
		if f.RuleID == ruleID {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func TestPJ01_InconsistentType(t *testing.T) {
	findings := analyze(t, map[string]string{
		"order.yaml": `
title: Order
properties:
  quantity: {type: integer}
`,
		"shipment.yaml": `
title: Shipment
properties:
  quantity: {type: string}
`,
	}, "PJ01")

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "project-inconsistent-type", f.Rule)
	assert.Equal(t, lint.SeverityShould, f.Severity)
	assert.Equal(t, "order.yaml", f.Document)
	assert.Equal(t, "/properties/quantity", f.Path)
	assert.Contains(t, f.Message, "integer")
	assert.Contains(t, f.Message, "string")
}

func TestPJ01_AgreementIsSilent(t *testing.T) {
	findings := analyze(t, map[string]string{
		"order.yaml": `
properties:
  quantity: {type: integer}
`,
		"shipment.yaml": `
properties:
  quantity: {type: integer}
`,
	}, "PJ01")
	assert.Empty(t, findings)
}

func TestPJ01_UndeclaredTypesIgnored(t *testing.T) {
	findings := analyze(t, map[string]string{
		"order.yaml": `
properties:
  quantity: {type: integer}
`,
		"shipment.yaml": `
properties:
  quantity: {description: free-form}
`,
	}, "PJ01")
	assert.Empty(t, findings)
}

func TestPJ01_ConflictWithinOneDocument(t *testing.T) {
	findings := analyze(t, map[string]string{
		"order.yaml": `
properties:
  quantity: {type: integer}
  line:
    type: object
    properties:
      quantity: {type: string}
`,
	}, "PJ01")
	require.Len(t, findings, 1)
	assert.Equal(t, "/properties/quantity", findings[0].Path)
}

func TestPJ02_UnresolvedReference(t *testing.T) {
	findings := analyze(t, map[string]string{
		"customer.yaml": `
title: Customer
properties:
  id: {type: string}
`,
		"order.yaml": `
title: Order
properties:
  customer_id:
    type: string
    x-references: Customer
  supplier_id:
    type: string
    x-references: Supplier
`,
	}, "PJ02")

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "order.yaml", f.Document)
	assert.Equal(t, "/properties/supplier_id", f.Path)
	assert.Contains(t, f.Message, `"Supplier"`)
}

func TestPJ02_TitleBeatsFilename(t *testing.T) {
	findings := analyze(t, map[string]string{
		"cust-v2.yaml": `
title: Customer
properties:
  id: {type: string}
`,
		"order.yaml": `
properties:
  customer_id:
    type: string
    x-references: Customer
`,
	}, "PJ02")
	assert.Empty(t, findings)
}

func TestPJ02_FilenameDefinesEntity(t *testing.T) {
	findings := analyze(t, map[string]string{
		"sales_order.yaml": `
properties:
  id: {type: string}
`,
		"invoice.yaml": `
properties:
  sales_order_id:
    type: string
    x-references: SalesOrder
`,
	}, "PJ02")
	assert.Empty(t, findings)
}

func TestProjectAnalyzerDisable(t *testing.T) {
	docs := map[string]string{
		"order.yaml": `
properties:
  customer_id:
    type: string
    x-references: Customer
`,
	}

	cfg := lint.NewConfig().Disable("PJ02")
	findings := project.NewAnalyzer(cfg).Analyze(buildContext(t, docs))
	for _, f := range findings {
		assert.NotEqual(t, "PJ02", f.RuleID)
	}

	cfg = lint.NewConfig().SetSeverity("project-unresolved-reference", lint.SeverityMust)
	findings = project.NewAnalyzer(cfg).Analyze(buildContext(t, docs))
	require.NotEmpty(t, findings)
	assert.Equal(t, lint.SeverityMust, findings[0].Severity)
}
