package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apistyle/apilint/pkg/lint"
	_ "github.com/apistyle/apilint/pkg/lint/rules" // register rules
	"github.com/apistyle/apilint/pkg/schema"
)

func parseDoc(t *testing.T, source string) *schema.Document {
	t.Helper()
	doc, err := schema.Parse("test.yaml", []byte(source))
	require.NoError(t, err)
	return doc
}

func runCheck(t *testing.T, source string) []lint.Finding {
	t.Helper()
	findings, err := lint.NewChecker(lint.NewConfig()).Check(parseDoc(t, source))
	require.NoError(t, err)
	return findings
}

func TestCheckNilDocument(t *testing.T) {
	checker := lint.NewChecker(nil)

	_, err := checker.Check(nil)
	assert.ErrorIs(t, err, lint.ErrNilDocument)

	_, err = checker.Check(&schema.Document{Name: "empty.yaml"})
	assert.ErrorIs(t, err, lint.ErrNilDocument)
}

func TestCheckCleanDocument(t *testing.T) {
	findings := runCheck(t, `
title: Pet
properties:
  name: {type: string}
  weight: {type: number}
  tags:
    type: array
    items: {type: string}
`)
	assert.Empty(t, findings)
}

func TestCheckSingleViolation(t *testing.T) {
	findings := runCheck(t, `
properties:
  id: {type: integer}
`)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "GN01", f.RuleID)
	assert.Equal(t, "generic-field-id-type", f.Rule)
	assert.Equal(t, lint.KindConvention, f.Kind)
	assert.Equal(t, lint.SeverityMust, f.Severity)
	assert.Equal(t, "/properties/id", f.Path)
}

func TestCheckCleanFieldNextToViolation(t *testing.T) {
	findings := runCheck(t, `
properties:
  id: {type: string}
  amount: {type: number, format: double}
`)

	require.Len(t, findings, 2)
	assert.Equal(t, "money-amount-format", findings[0].Rule)
	assert.Equal(t, "/properties/amount", findings[0].Path)
	assert.Equal(t, "MN02", findings[1].RuleID)
	assert.Equal(t, "/properties/amount", findings[1].Path)
}

func TestCheckDepthFirstOrder(t *testing.T) {
	findings := runCheck(t, `
properties:
  id: {type: integer}
  owner:
    type: object
    properties:
      id: {type: integer}
  amount: {type: number, format: double}
`)

	var got []string
	for _, f := range findings {
		got = append(got, f.RuleID+" "+f.Path)
	}
	want := []string{
		"GN01 /properties/id",
		"GN01 /properties/owner/properties/id",
		"MN01 /properties/amount",
		"MN02 /properties/amount",
	}
	assert.Equal(t, want, got)
}

func TestCheckParentBeforeChild(t *testing.T) {
	findings := runCheck(t, `
properties:
  payment:
    type: object
    properties:
      amount: {type: number, format: float}
      currency: {type: integer}
`)

	var got []string
	for _, f := range findings {
		got = append(got, f.RuleID+" "+f.Path)
	}
	want := []string{
		"MN01 /properties/payment/properties/amount",
		"MN03 /properties/payment/properties/currency",
	}
	assert.Equal(t, want, got)
}

func TestCheckDescendsIntoItems(t *testing.T) {
	findings := runCheck(t, `
properties:
  orders:
    type: array
    items:
      type: object
      properties:
        id: {type: integer}
`)

	require.Len(t, findings, 1)
	assert.Equal(t, "GN01", findings[0].RuleID)
	assert.Equal(t, "/properties/orders/items/properties/id", findings[0].Path)
}

func TestCheckIdempotent(t *testing.T) {
	doc := parseDoc(t, `
properties:
  id: {type: integer}
  amount: {type: number, format: double}
  address:
    type: object
    properties:
      city: {type: string}
`)

	checker := lint.NewChecker(lint.NewConfig())
	first, err := checker.Check(doc)
	require.NoError(t, err)
	second, err := checker.Check(doc)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestCheckMalformedProperty(t *testing.T) {
	findings := runCheck(t, `
properties:
  good: {type: string}
  bad: [1, 2, 3]
  id: {type: integer}
`)

	require.Len(t, findings, 2)

	assert.Equal(t, lint.MalformedNodeRule, findings[0].Rule)
	assert.Equal(t, lint.KindMalformedNode, findings[0].Kind)
	assert.Equal(t, lint.SeverityMust, findings[0].Severity)
	assert.Equal(t, "/properties/bad", findings[0].Path)
	assert.Empty(t, findings[0].RuleID)

	// The run continues past the malformed node.
	assert.Equal(t, "GN01", findings[1].RuleID)
	assert.Equal(t, "/properties/id", findings[1].Path)
}

func TestCheckMalformedPropertiesNode(t *testing.T) {
	findings := runCheck(t, `
properties:
  outer:
    type: object
    properties: not-a-mapping
`)

	require.Len(t, findings, 1)
	assert.Equal(t, lint.KindMalformedNode, findings[0].Kind)
	assert.Equal(t, "/properties/outer/properties", findings[0].Path)
}

func TestCheckMalformedItemsNode(t *testing.T) {
	findings := runCheck(t, `
properties:
  tags:
    type: array
    items: 7
`)

	require.Len(t, findings, 1)
	assert.Equal(t, lint.KindMalformedNode, findings[0].Kind)
	assert.Equal(t, "/properties/tags/items", findings[0].Path)
}

func TestCheckMalformedSkipsSubtree(t *testing.T) {
	// The subtree under a malformed property is never visited, so the
	// numeric id inside it stays unreported.
	findings := runCheck(t, `
properties:
  bad:
    - properties:
        id: {type: integer}
`)

	require.Len(t, findings, 1)
	assert.Equal(t, lint.KindMalformedNode, findings[0].Kind)
	assert.Equal(t, "/properties/bad", findings[0].Path)
}

func TestCheckDisableRule(t *testing.T) {
	source := `
properties:
  id: {type: integer}
  amount: {type: number, format: double}
  currency: {type: string}
`

	t.Run("by ID", func(t *testing.T) {
		cfg := lint.NewConfig().Disable("GN01")
		findings, err := lint.NewChecker(cfg).Check(parseDoc(t, source))
		require.NoError(t, err)
		require.Len(t, findings, 1)
		assert.Equal(t, "MN01", findings[0].RuleID)
	})

	t.Run("by name", func(t *testing.T) {
		cfg := lint.NewConfig().Disable("generic-field-id-type")
		findings, err := lint.NewChecker(cfg).Check(parseDoc(t, source))
		require.NoError(t, err)
		require.Len(t, findings, 1)
		assert.Equal(t, "MN01", findings[0].RuleID)
	})
}

func TestCheckSeverityOverride(t *testing.T) {
	source := `
properties:
  id: {type: integer}
`

	cfg := lint.NewConfig().SetSeverity("GN01", lint.SeverityShould)
	findings, err := lint.NewChecker(cfg).Check(parseDoc(t, source))
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, lint.SeverityShould, findings[0].Severity)
}

func TestCheckSeverityOverrideIDWins(t *testing.T) {
	source := `
properties:
  amount: {type: number}
  currency: {type: string}
`

	cfg := lint.NewConfig().
		SetSeverity("money-amount-format", lint.SeverityMust).
		SetSeverity("MN01", lint.SeverityShould)
	findings, err := lint.NewChecker(cfg).Check(parseDoc(t, source))
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, lint.SeverityShould, findings[0].Severity)
}

func TestCheckMalformedSurvivesDisabling(t *testing.T) {
	cfg := lint.NewConfig()
	for _, rule := range lint.GetAll() {
		cfg.Disable(rule.ID)
	}
	findings, err := lint.NewChecker(cfg).Check(parseDoc(t, `
properties:
  bad: 42
`))
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, lint.KindMalformedNode, findings[0].Kind)
}

func TestCheckOptionsByName(t *testing.T) {
	source := `
properties:
  amount: {type: number, format: decimal128}
  currency: {type: string}
`

	cfg := lint.NewConfig()
	cfg.SetRuleOptions("money-amount-format", map[string]any{
		"decimal_formats": []string{"decimal128"},
	})
	findings, err := lint.NewChecker(cfg).Check(parseDoc(t, source))
	require.NoError(t, err)
	assert.Empty(t, findings)
}
