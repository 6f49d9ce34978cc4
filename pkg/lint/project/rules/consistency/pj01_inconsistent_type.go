package consistency

import (
	"fmt"
	"strings"

	"github.com/apistyle/apilint/pkg/lint"
	"github.com/apistyle/apilint/pkg/lint/project"
)

func init() {
	project.Register(InconsistentType)
}

// InconsistentType flags property names declared with different types
// in different places.
var InconsistentType = project.RuleDef{
	ID:          "PJ01",
	Name:        "project-inconsistent-type",
	Group:       "consistency",
	Description: "A property name should have the same type everywhere it appears",
	Severity:    lint.SeverityShould,
	Check:       checkInconsistentType,

	Rationale: `When "quantity" is an integer in one document and a string in
another, every consumer that handles both grows a conversion branch, and
half of them get it wrong. One name, one type keeps a schema set learnable.`,

	BadExample: `# order.yaml
properties:
  quantity: {type: integer}

# shipment.yaml
properties:
  quantity: {type: string}`,

	GoodExample: `# order.yaml
properties:
  quantity: {type: integer}

# shipment.yaml
properties:
  quantity: {type: integer}`,

	Fix: `Pick one type for the property name and align every declaration, or
rename the property that means something different.`,
}

func checkInconsistentType(ctx *project.Context, opts map[string]any) []project.Finding {
	var findings []project.Finding

	for _, name := range ctx.TypedProperties() {
		occs := ctx.Occurrences(name)
		if len(occs) < 2 {
			continue
		}

		// First occurrence of each distinct type, in document order.
		var distinct []project.Occurrence
		seen := make(map[string]bool)
		for _, occ := range occs {
			if seen[occ.Type] {
				continue
			}
			seen[occ.Type] = true
			distinct = append(distinct, occ)
		}
		if len(distinct) < 2 {
			continue
		}

		parts := make([]string, len(distinct))
		for i, occ := range distinct {
			parts[i] = fmt.Sprintf("%s (%s)", occ.Type, occ.Document)
		}

		findings = append(findings, project.Finding{
			RuleID:           "PJ01",
			Rule:             "project-inconsistent-type",
			Severity:         lint.SeverityShould,
			Document:         occs[0].Document,
			Path:             occs[0].Path,
			Message:          fmt.Sprintf("property %q is declared with conflicting types: %s", name, strings.Join(parts, ", ")),
			DocumentationURL: lint.BuildDocURL("PJ01"),
		})
	}

	return findings
}
