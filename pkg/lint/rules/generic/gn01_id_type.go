package generic

import (
	"fmt"

	"github.com/apistyle/apilint/pkg/lint"
)

func init() {
	lint.Register(IDType)
}

// IDType requires identifier properties to be strings.
var IDType = lint.RuleDef{
	ID:          "GN01",
	Name:        "generic-field-id-type",
	Group:       "generic",
	Description: `Properties named "id" must be declared as strings`,
	Severity:    lint.SeverityMust,
	Check:       checkIDType,

	Rationale: `Identifiers are opaque tokens, not numbers. Numeric identifiers
invite arithmetic, leak allocation order, and silently lose precision once
they exceed 2^53 in JavaScript clients. A string identifier survives UUIDs,
prefixed keys, and external systems without a migration.`,

	BadExample: `properties:
  id:
    type: integer`,

	GoodExample: `properties:
  id:
    type: string`,

	Fix: `Declare the identifier as type string. If the backing store uses a
numeric key, serialize it as a string at the boundary.`,
}

func checkIDType(prop *lint.Property, opts map[string]any) []lint.Finding {
	if prop.Name != "id" {
		return nil
	}

	typ := prop.Schema.Type()
	if typ == "" || typ == "string" {
		return nil
	}

	return []lint.Finding{{
		RuleID:           "GN01",
		Rule:             "generic-field-id-type",
		Severity:         lint.SeverityMust,
		Path:             prop.Path,
		Message:          fmt.Sprintf("%q must be of type string, got %q", prop.Name, typ),
		DocumentationURL: lint.BuildDocURL("GN01"),
	}}
}
