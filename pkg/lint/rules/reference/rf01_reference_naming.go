package reference

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/apistyle/apilint/pkg/lint"
)

func init() {
	lint.Register(ReferenceNaming)
}

// ReferenceNaming suggests the <referenced_type>_id convention for
// annotated reference properties.
var ReferenceNaming = lint.RuleDef{
	ID:          "RF01",
	Name:        "reference-field-naming",
	Group:       "reference",
	Description: "Reference properties should be named after the type they reference",
	Severity:    lint.SeverityShould,
	Check:       checkReferenceNaming,
	ConfigKeys:  []string{"annotation"},

	Rationale: `A reference named sales_order_id tells the reader what it points
at without opening another document. Names like ref, parent, or order leave
the target implicit and drift apart across teams. The convention only
applies to properties that are explicitly annotated as references, so
ordinary identifiers are never renamed on a guess.`,

	BadExample: `properties:
  order:
    type: string
    x-references: SalesOrder`,

	GoodExample: `properties:
  sales_order_id:
    type: string
    x-references: SalesOrder`,

	Fix: `Rename the property to the snake_case form of the referenced type
with an _id suffix. Use the "annotation" option if your schemas mark
references with a different extension key.`,
}

const defaultReferenceAnnotation = "x-references"

func checkReferenceNaming(prop *lint.Property, opts map[string]any) []lint.Finding {
	annotation := lint.GetStringOption(opts, "annotation", defaultReferenceAnnotation)

	target, ok := prop.Schema.GetString(annotation)
	if !ok || target == "" {
		return nil
	}

	expected := snakeCase(target) + "_id"
	if prop.Name == expected {
		return nil
	}

	return []lint.Finding{{
		RuleID:           "RF01",
		Rule:             "reference-field-naming",
		Severity:         lint.SeverityShould,
		Path:             prop.Path,
		Message:          fmt.Sprintf("%q references %q and should be named %q", prop.Name, target, expected),
		DocumentationURL: lint.BuildDocURL("RF01"),
	}}
}

// snakeCase converts CamelCase, space-separated, and dash-separated names
// to snake_case: "SalesOrder" -> "sales_order", "HTTPRoute" -> "http_route".
func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		switch {
		case r == ' ' || r == '-' || r == '_':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteRune('_')
			}
		case unicode.IsUpper(r):
			if i > 0 && needsBoundary(runes, i) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), "_")
}

// needsBoundary reports whether an underscore belongs before runes[i].
// A boundary sits after a lowercase rune or before the last upper of an
// acronym run that is followed by a lowercase rune.
func needsBoundary(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return true
	}
	return false
}
