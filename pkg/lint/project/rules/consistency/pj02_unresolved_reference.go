package consistency

import (
	"fmt"

	"github.com/apistyle/apilint/pkg/lint"
	"github.com/apistyle/apilint/pkg/lint/project"
)

func init() {
	project.Register(UnresolvedReference)
}

// UnresolvedReference flags references whose target entity no document
// in the project defines.
var UnresolvedReference = project.RuleDef{
	ID:          "PJ02",
	Name:        "project-unresolved-reference",
	Group:       "consistency",
	Description: "Reference annotations should point at entities the project defines",
	Severity:    lint.SeverityShould,
	Check:       checkUnresolvedReference,

	Rationale: `A reference to an entity nobody defines is either a typo or a
schema that was deleted without updating its dependents. Both surface as
runtime surprises; a project-wide check surfaces them at review time.`,

	BadExample: `properties:
  customer_id:
    type: string
    x-references: Custoner`,

	GoodExample: `properties:
  customer_id:
    type: string
    x-references: Customer`,

	Fix: `Fix the annotation to name a defined entity, or add the missing
schema document for the referenced type.`,
}

func checkUnresolvedReference(ctx *project.Context, opts map[string]any) []project.Finding {
	var findings []project.Finding

	for _, ref := range ctx.References() {
		if ctx.HasEntity(ref.Target) {
			continue
		}
		findings = append(findings, project.Finding{
			RuleID:           "PJ02",
			Rule:             "project-unresolved-reference",
			Severity:         lint.SeverityShould,
			Document:         ref.Document,
			Path:             ref.Path,
			Message:          fmt.Sprintf("%q references %q, which no document in the project defines", ref.Property, ref.Target),
			DocumentationURL: lint.BuildDocURL("PJ02"),
		})
	}

	return findings
}
