package generic_test

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

func TestGN01_IDType(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantFinding bool
	}{
		{
			name: "integer id",
			source: `
properties:
  id: {type: integer}
`,
			wantFinding: true,
		},
		{
			name: "number id",
			source: `
properties:
  id: {type: number}
`,
			wantFinding: true,
		},
		{
			name: "string id",
			source: `
properties:
  id: {type: string}
`,
			wantFinding: false,
		},
		{
			name: "undeclared type",
			source: `
properties:
  id: {description: opaque key}
`,
			wantFinding: false,
		},
		{
			name: "nested id",
			source: `
properties:
  owner:
    type: object
    properties:
      id: {type: integer}
`,
			wantFinding: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.source, "GN01")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected GN01 finding")
			} else {
				assert.Empty(t, findings, "unexpected GN01 finding")
			}
		})
	}
}

func TestGN01_NestedPath(t *testing.T) {
	findings := runRule(t, `
properties:
  owner:
    type: object
    properties:
      id: {type: integer}
`, "GN01")

	require.Len(t, findings, 1)
	assert.Equal(t, "/properties/owner/properties/id", findings[0].Path)
	assert.Equal(t, "generic-field-id-type", findings[0].Rule)
}

func TestGN02_TimestampFormat(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantFinding bool
	}{
		{
			name: "integer created",
			source: `
properties:
  created: {type: integer}
`,
			wantFinding: true,
		},
		{
			name: "string created without format",
			source: `
properties:
  created: {type: string}
`,
			wantFinding: true,
		},
		{
			name: "string created with date format",
			source: `
properties:
  created: {type: string, format: date}
`,
			wantFinding: true,
		},
		{
			name: "date-time created",
			source: `
properties:
  created: {type: string, format: date-time}
`,
			wantFinding: false,
		},
		{
			name: "date-time modified",
			source: `
properties:
  modified: {type: string, format: date-time}
`,
			wantFinding: false,
		},
		{
			name: "number modified",
			source: `
properties:
  modified: {type: number}
`,
			wantFinding: true,
		},
		{
			name: "undeclared type",
			source: `
properties:
  created: {description: when it happened}
`,
			wantFinding: false,
		},
		{
			name: "unwatched name",
			source: `
properties:
  updated: {type: integer}
`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.source, "GN02")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected GN02 finding")
			} else {
				assert.Empty(t, findings, "unexpected GN02 finding")
			}
		})
	}
}

func TestGN02_ExtraFormats(t *testing.T) {
	source := `
properties:
  created: {type: string, format: date}
`
	doc, err := schema.Parse("test.yaml", []byte(source))
	require.NoError(t, err)

	cfg := lint.NewConfig()
	cfg.SetRuleOptions("GN02", map[string]any{"formats": []string{"date-time", "date"}})
	findings, err := lint.NewChecker(cfg).Check(doc)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestGN03_TypeType(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantFinding bool
	}{
		{
			name: "integer discriminator",
			source: `
properties:
  type: {type: integer}
`,
			wantFinding: true,
		},
		{
			name: "string discriminator",
			source: `
properties:
  type: {type: string}
`,
			wantFinding: false,
		},
		{
			name: "undeclared type",
			source: `
properties:
  type: {description: variant tag}
`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.source, "GN03")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected GN03 finding")
			} else {
				assert.Empty(t, findings, "unexpected GN03 finding")
			}
		})
	}
}
